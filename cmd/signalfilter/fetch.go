package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/qepting91/signal-filter/internal/classify"
	"github.com/qepting91/signal-filter/internal/collector"
	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/feed"
	"github.com/qepting91/signal-filter/internal/ingest"
	"github.com/qepting91/signal-filter/internal/storage"
	"github.com/spf13/cobra"
)

func fetchCmd(g *globalFlags) *cobra.Command {
	var (
		targetsPath string
		mode        string
		out         string
		workers     int
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Pull posts from a feed API and record which ones are low-signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()

			targets, err := ingest.LoadTargets(targetsPath)
			if err != nil {
				return err
			}

			client, err := collector.NewCollector(mode, logger)
			if err != nil {
				return err
			}
			logger.Info("Collector initialized", "mode", mode)

			provider, err := g.provider()
			if err != nil {
				return err
			}

			// Adjust workers based on mode to prevent rate limiting
			if mode == "reddit" && workers > 2 {
				workers = 2
			}

			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return err
			}
			resultQueue := make(chan domain.Verdict, 100)
			var writerWg sync.WaitGroup
			writer := &storage.WriterService{FilePath: out, Logger: logger}
			writerWg.Add(1)
			go writer.Start(&writerWg, resultQueue)

			ctx, cancel := signalContext()
			defer cancel()

			p := &feed.Pipeline{
				Collector: client,
				Provider:  provider,
				Tracker:   classify.NewDuplicateTracker(),
				Workers:   workers,
				Limit:     limit,
				Logger:    logger,
			}
			logger.Info("Starting fetch cycle", "targets", len(targets))
			sum, runErr := p.Run(ctx, targets, resultQueue)

			close(resultQueue)
			writerWg.Wait()
			logger.Info("Fetch complete. Verdicts saved.", "fetched", sum.Fetched, "hidden", sum.Hidden, "failed", sum.Failed, "path", out)
			return runErr
		},
	}

	cmd.Flags().StringVar(&targetsPath, "targets", "input/submolts.csv", "CSV of submolt,min_karma")
	cmd.Flags().StringVar(&mode, "mode", envOr("COLLECTOR_MODE", "mock"), "Collector: moltbook, reddit or mock")
	cmd.Flags().StringVar(&out, "out", "data/verdicts.json", "NDJSON verdict output")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent fetchers")
	cmd.Flags().IntVar(&limit, "limit", 25, "Posts per target")
	return cmd
}
