package main

import (
	"github.com/spf13/cobra"
	"github.com/swdee/go-facecam"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Serve the feeds as an MJPEG stream, view http://<addr>/stream in a browser",
	RunE: func(cmd *cobra.Command, args []string) error {

		display := facecam.NewStreamDisplay(cfg.StreamAddr, cfg.JPEGQuality,
			logger.Named("stream"))

		if err := display.Start(); err != nil {
			return err
		}

		return run(cmd.Context(), display)
	},
}

func init() {
	streamCmd.Flags().StringVar(&cfg.StreamAddr, "addr", cfg.StreamAddr, "HTTP listen address")
	rootCmd.AddCommand(streamCmd)
}
