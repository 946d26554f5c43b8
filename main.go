package main

import (
	"github.com/computegod/classkit/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "classkit [subcommand]",
	Short:        "classkit 🎩\n a playground for dictionary-passing type classes",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.UnifyCmd)
	rootCmd.AddCommand(cmd.SolveCmd)
}
