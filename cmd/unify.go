package cmd

import (
	"fmt"
	"github.com/computegod/classkit/internal/log"
	"github.com/computegod/classkit/typing"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"log/slog"
	"sort"
)

var UnifyCmd = &cobra.Command{
	Use:          "unify <term> <term>",
	Short:        "Unify two type terms and print the resulting bindings",
	RunE:         runUnify,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var unifyLogLevel *int

func init() {
	unifyLogLevel = UnifyCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func runUnify(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*unifyLogLevel))

	left, err := typing.ParseTerm(args[0])
	if err != nil {
		return errors.Wrap(err, "could not read left term")
	}
	right, err := typing.ParseTerm(args[1])
	if err != nil {
		return errors.Wrap(err, "could not read right term")
	}

	subst, err := typing.Unify(left, right, nil)
	if err != nil {
		return err
	}

	bindings := subst.Bindings()
	if len(bindings) == 0 {
		cmd.Println("terms unify with no bindings")
		return nil
	}
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Println(fmt.Sprintf("%s = %s", name, bindings[name]))
	}
	return nil
}
