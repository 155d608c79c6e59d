package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/qepting91/signal-filter/internal/classify"
	"github.com/qepting91/signal-filter/internal/dashboard"
	"github.com/qepting91/signal-filter/internal/scanner"
	"github.com/qepting91/signal-filter/internal/watch"
	"github.com/spf13/cobra"
)

func scanCmd(g *globalFlags) *cobra.Command {
	var (
		in, out   string
		watchMode bool
		debounce  time.Duration
		banner    bool
		port      string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Hide low-signal posts in an HTML feed document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkScanPaths(in, out, watchMode); err != nil {
				return err
			}
			provider, err := g.provider()
			if err != nil {
				return err
			}

			reporters := []scanner.Reporter{scanner.LogReporter{Logger: slog.Default()}}
			status := dashboard.NewStatus(nil)
			if port != "" {
				reporters = append(reporters, status)
				go func() {
					slog.Info("Starting Dashboard", "port", port)
					if err := dashboard.StartServer("", port, status); err != nil {
						slog.Error("Dashboard failed", "err", err)
					}
				}()
			}

			opts := []scanner.Option{scanner.WithReporters(reporters...), scanner.WithLogger(slog.Default())}
			if banner {
				opts = append(opts, scanner.WithBanner())
			}
			s := scanner.New(provider, classify.NewDuplicateTracker(), opts...)

			ctx, cancel := signalContext()
			defer cancel()

			scan := func(ctx context.Context) error {
				res, err := s.ScanFile(ctx, in, out)
				if err != nil {
					return err
				}
				slog.Info("scan complete", "posts", res.Total, "hidden", res.Hidden, "out", out)
				return nil
			}

			if !watchMode {
				return scan(ctx)
			}
			return watch.New(watch.Config{Path: in, Debounce: debounce}, scan, slog.Default()).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "HTML feed document to scan")
	cmd.Flags().StringVar(&out, "out", "", "Where to write the filtered document")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Rescan whenever the document changes")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Coalesce changes within this window into one rescan (0 = rescan on every change)")
	cmd.Flags().BoolVar(&banner, "banner", true, "Insert the hidden-count banner into the filtered document")
	cmd.Flags().StringVar(&port, "dashboard-port", "", "Serve the live status banner on this port")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// checkScanPaths rejects a watched scan that writes over its own input, since
// every write would trigger the next rescan.
func checkScanPaths(in, out string, watching bool) error {
	if out == "" {
		return fmt.Errorf("--out is required")
	}
	if !watching {
		return nil
	}
	absIn, err := filepath.Abs(in)
	if err != nil {
		return fmt.Errorf("resolve --in: %w", err)
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve --out: %w", err)
	}
	if absIn == absOut {
		return fmt.Errorf("--watch needs --out to differ from --in (%s)", absIn)
	}
	return nil
}
