package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/storelog/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storelog",
	Short: "storelog logs the actions of in-process state stores",
	Long: `storelog snapshots a store's state around every action and prints what changed.
It ships a demo counter store to show the output.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Print diagnostics (plugin warnings, trace records) to stderr")
}

// diagnostics returns the stderr logger, or a no-op one unless --verbose is set.
func diagnostics(cmd *cobra.Command) *slog.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
