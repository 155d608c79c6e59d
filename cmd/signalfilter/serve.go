package main

import (
	"log/slog"

	"github.com/qepting91/signal-filter/internal/dashboard"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var data, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Chart stored verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Starting Dashboard", "port", port, "data", data)
			return dashboard.StartServer(data, port, dashboard.NewStatus(nil))
		},
	}

	cmd.Flags().StringVar(&data, "data", "data/verdicts.json", "NDJSON verdict file")
	// Default to 8080 if PORT is missing
	cmd.Flags().StringVar(&port, "port", envOr("PORT", "8080"), "Listen port")
	return cmd
}
