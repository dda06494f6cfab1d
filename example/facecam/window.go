package main

import (
	"github.com/spf13/cobra"
	"github.com/swdee/go-facecam"
)

var windowTitle string

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the feeds in a desktop window, press ESC or close the window to quit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), facecam.NewWindowDisplay(windowTitle))
	},
}

func init() {
	windowCmd.Flags().StringVar(&windowTitle, "title", "Near Real-time Face detection", "Window title")
	rootCmd.AddCommand(windowCmd)
}
