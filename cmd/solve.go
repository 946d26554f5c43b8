package cmd

import (
	"fmt"
	"github.com/computegod/classkit/internal/log"
	"github.com/computegod/classkit/scenario"
	"github.com/spf13/cobra"
	"log/slog"
	"sort"
	"strings"
)

var SolveCmd = &cobra.Command{
	Use:          "solve <scenario.yaml>",
	Short:        "Resolve the constraints of a scenario file into dictionaries",
	RunE:         runSolve,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var solveLogLevel *int

func init() {
	solveLogLevel = SolveCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*solveLogLevel))

	sc, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}
	solutions, err := sc.Solve()
	if err != nil {
		return fmt.Errorf("could not resolve constraints: %w", err)
	}

	metas := make([]string, 0, len(solutions))
	for meta := range solutions {
		metas = append(metas, meta)
	}
	sort.Strings(metas)
	for _, meta := range metas {
		dictionary := solutions[meta]
		fields := make([]string, 0, len(dictionary))
		for field := range dictionary {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		cmd.Println(fmt.Sprintf("%s: {%s}", meta, strings.Join(fields, ", ")))
	}
	return nil
}
