package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/qepting91/signal-filter/internal/classify"
	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	posts map[string][]domain.Post
}

func (s stubCollector) FetchPosts(ctx context.Context, target domain.Target, limit int) ([]domain.Post, error) {
	posts, ok := s.posts[target.Submolt]
	if !ok {
		return nil, errors.New("unknown submolt")
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func provider() settings.Provider {
	return settings.Static(domain.Configuration{
		MinKarma:      10,
		HideIntros:    true,
		IntroPatterns: []string{"hello world", "just landed"},
		SpamDomains:   []string{"spam.co"},
	})
}

func TestPipelineClassifiesEveryPost(t *testing.T) {
	col := stubCollector{posts: map[string][]domain.Post{
		"coding": {
			{ID: "1", Title: "Refactoring agents", Karma: 50},
			{ID: "2", Title: "Just landed!", Karma: 50},
			{ID: "3", Title: "spam.co", Karma: 50},
			{ID: "4", Title: "low", Karma: 2},
		},
		"general": {
			{ID: "5", Title: "gm", Karma: 40},
			{ID: "6", Title: "gm", Karma: 40},
			{ID: "7", Title: "GM ", Karma: 40},
		},
	}}
	out := make(chan domain.Verdict, 16)
	p := &Pipeline{Collector: col, Provider: provider(), Workers: 1}

	sum, err := p.Run(context.Background(), []domain.Target{{Submolt: "coding"}, {Submolt: "general"}}, out)
	require.NoError(t, err)
	close(out)

	assert.Equal(t, 7, sum.Fetched)
	assert.Equal(t, 4, sum.Hidden)
	assert.Equal(t, 0, sum.Failed)
	assert.Equal(t, map[domain.Reason]int{
		domain.ReasonIntroPattern: 1,
		domain.ReasonSpam:         1,
		domain.ReasonLowKarma:     1,
		domain.ReasonDuplicate:    1,
	}, sum.ByReason)

	hidden := map[string]bool{}
	for v := range out {
		hidden[v.Post.ID] = v.Hidden
	}
	assert.Equal(t, map[string]bool{"1": false, "2": true, "3": true, "4": true, "5": false, "6": false, "7": true}, hidden)
}

func TestPipelineTargetThresholdOverrides(t *testing.T) {
	col := stubCollector{posts: map[string][]domain.Post{
		"strict": {{ID: "1", Title: "decent", Karma: 20}},
	}}
	p := &Pipeline{Collector: col, Provider: provider()}

	sum, err := p.Run(context.Background(), []domain.Target{{Submolt: "strict", MinKarma: 100}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Hidden)
	assert.Equal(t, 1, sum.ByReason[domain.ReasonLowKarma])
}

func TestPipelineCountsFailures(t *testing.T) {
	col := stubCollector{posts: map[string][]domain.Post{
		"ok": {{ID: "1", Title: "fine", Karma: 20}},
	}}
	p := &Pipeline{Collector: col, Provider: provider(), Workers: 3}

	sum, err := p.Run(context.Background(), []domain.Target{{Submolt: "ok"}, {Submolt: "gone"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Fetched)
	assert.Equal(t, 1, sum.Failed)
}

func TestPipelineTrackerSpansRuns(t *testing.T) {
	col := stubCollector{posts: map[string][]domain.Post{
		"general": {{ID: "1", Title: "daily thread", Karma: 20}},
	}}
	tracker := classify.NewDuplicateTracker()
	p := &Pipeline{Collector: col, Provider: provider(), Tracker: tracker}
	targets := []domain.Target{{Submolt: "general"}}

	var hidden []int
	for i := 0; i < 3; i++ {
		sum, err := p.Run(context.Background(), targets, nil)
		require.NoError(t, err)
		hidden = append(hidden, sum.Hidden)
	}
	assert.Equal(t, []int{0, 0, 1}, hidden)
	assert.Equal(t, 3, tracker.Count("daily thread"))
}

func TestPipelineHidesOnlyLaterCopies(t *testing.T) {
	col := stubCollector{posts: map[string][]domain.Post{
		"general": {
			{ID: "1", Title: "Repost", Karma: 20},
			{ID: "2", Title: "repost", Karma: 20},
			{ID: "3", Title: "REPOST ", Karma: 20},
			{ID: "4", Title: "repost", Karma: 20},
		},
	}}
	out := make(chan domain.Verdict, 4)
	p := &Pipeline{Collector: col, Provider: provider(), Workers: 1}

	sum, err := p.Run(context.Background(), []domain.Target{{Submolt: "general"}}, out)
	require.NoError(t, err)
	close(out)

	hidden := map[string]bool{}
	for v := range out {
		hidden[v.Post.ID] = v.Hidden
	}
	assert.Equal(t, map[string]bool{"1": false, "2": false, "3": true, "4": true}, hidden)
	assert.Equal(t, 2, sum.ByReason[domain.ReasonDuplicate])
}

func TestPipelineLimit(t *testing.T) {
	col := stubCollector{posts: map[string][]domain.Post{
		"big": {{ID: "1", Karma: 20, Title: "a"}, {ID: "2", Karma: 20, Title: "b"}, {ID: "3", Karma: 20, Title: "c"}},
	}}
	p := &Pipeline{Collector: col, Provider: provider(), Limit: 2}

	sum, err := p.Run(context.Background(), []domain.Target{{Submolt: "big"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Fetched)
}
