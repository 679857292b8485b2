package main

import (
	"fmt"

	"github.com/aretw0/storelog"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of storelog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storelog version %s\n", storelog.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
