package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"csvdash/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		sessions := server.NewSessions(time.Duration(cfg.SessionTTLMin)*time.Minute, cfg.MaxPoints)
		ctrl := server.NewController(cfg, newGenerator(""), sessions)
		fmt.Printf("✓ Dashboard listening on http://%s\n", cfg.ListenAddr)
		return server.Start(ctrl, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
