package main

import (
	"fmt"

	"github.com/aretw0/storelog/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Explain the marks and sections of the action log",
	RunE: func(cmd *cobra.Command, args []string) error {
		style, _ := cmd.Flags().GetString("style")
		render, err := tui.NewRenderer(style)
		if err != nil {
			return err
		}
		out, err := render(tui.Legend)
		if err != nil {
			return fmt.Errorf("failed to render legend: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(legendCmd)
	legendCmd.Flags().String("style", "", "glamour style (dark, light, notty); detected when empty")
}
