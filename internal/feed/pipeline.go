// Package feed filters posts pulled from remote feeds before they are stored.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/qepting91/signal-filter/internal/classify"
	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/settings"
)

// Summary totals one pipeline run.
type Summary struct {
	Fetched  int
	Hidden   int
	Failed   int
	ByReason map[domain.Reason]int
}

type batch struct {
	target domain.Target
	posts  []domain.Post
}

// Pipeline fetches targets concurrently and classifies every post on the
// calling goroutine, which is the only user of Tracker.
type Pipeline struct {
	Collector domain.Collector
	Provider  settings.Provider
	Tracker   *classify.DuplicateTracker
	Workers   int
	Limit     int
	Logger    *slog.Logger
}

// Run classifies the posts of every target and sends a verdict for each one
// on out. out is not closed.
func (p *Pipeline) Run(ctx context.Context, targets []domain.Target, out chan<- domain.Verdict) (Summary, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if p.Tracker == nil {
		p.Tracker = classify.NewDuplicateTracker()
	}
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = 25
	}

	cfg := p.Provider.Get(ctx, domain.DefaultConfiguration())
	p.Tracker.BeginScan()

	jobQueue := make(chan domain.Target, len(targets))
	for _, t := range targets {
		jobQueue <- t
	}
	close(jobQueue)

	batches := make(chan batch, workers)
	failures := make(chan domain.Target, len(targets))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobQueue {
				if ctx.Err() != nil {
					return
				}
				posts, err := p.Collector.FetchPosts(ctx, t, limit)
				if err != nil {
					logger.Error("fetch failed", "submolt", t.Submolt, "err", err)
					failures <- t
					continue
				}
				select {
				case batches <- batch{target: t, posts: posts}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(batches)
	}()

	sum := Summary{ByReason: make(map[domain.Reason]int)}
	for b := range batches {
		tcfg := cfg
		if b.target.MinKarma > 0 {
			tcfg.MinKarma = b.target.MinKarma
		}
		for _, post := range b.posts {
			res := classify.Classify(post.Attributes(), tcfg, p.Tracker)
			sum.Fetched++
			feedPosts.WithLabelValues(verdictLabel(res.Hide)).Inc()
			if res.Hide {
				sum.Hidden++
				for _, r := range res.Reasons {
					sum.ByReason[r]++
				}
			}
			if out == nil {
				continue
			}
			select {
			case out <- domain.Verdict{Post: post, Hidden: res.Hide, Reasons: res.Reasons}:
			case <-ctx.Done():
			}
		}
	}
	sum.Failed = len(failures)

	logger.Info("feed filtered", "fetched", sum.Fetched, "hidden", sum.Hidden, "failed", sum.Failed)
	return sum, ctx.Err()
}

func verdictLabel(hidden bool) string {
	if hidden {
		return "hidden"
	}
	return "kept"
}
