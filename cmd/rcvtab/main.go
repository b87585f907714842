// Command rcvtab is a demonstration driver for rcvcore: it loads a
// ContestInput JSON file, calls contest.Tabulate, and prints the
// resulting ContestReport. It is explicitly not part of the specified
// core surface (spec.md §6.3: the core exposes no CLI); it exists only
// as a runnable way to exercise the library end to end.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "rcvtab",
	Short:   "Tabulate a ranked-choice contest and print its report",
	Long:    `rcvtab loads a ContestInput JSON file, runs the rcvcore tabulation and analytics engine, and prints the resulting ContestReport.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(tabulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
