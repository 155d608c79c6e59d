package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/qepting91/signal-filter/internal/domain"
)

// MockClient implements domain.Collector with generated posts. Every batch
// mixes ordinary posts with intros, short spam links and a repeated title so
// that each filter rule has something to catch.
type MockClient struct {
	faker   *gofakeit.Faker
	Latency time.Duration
}

func NewMockClient(seed int64) *MockClient {
	return &MockClient{faker: gofakeit.New(seed)}
}

func (mc *MockClient) FetchPosts(ctx context.Context, target domain.Target, limit int) ([]domain.Post, error) {
	if mc.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(mc.Latency):
		}
	}

	f := mc.faker
	posts := make([]domain.Post, 0, limit)
	for i := 0; i < limit; i++ {
		title := f.Sentence(6)
		content := f.Paragraph(1, 3, 12, " ")
		switch i % 8 {
		case 1:
			title = "Hello world, " + f.FirstName() + " just landed"
		case 3:
			title = "check this out"
			content = "hot pics at onlyfans.com/" + f.Username()
		case 5:
			title = "Weekly discussion thread"
		}
		posts = append(posts, domain.Post{
			ID:        fmt.Sprintf("mock_%s_%d", target.Submolt, i),
			Title:     title,
			Content:   content,
			Submolt:   "m/" + target.Submolt,
			Author:    f.Username(),
			URL:       f.URL(),
			Karma:     f.Number(-5, 200),
			CreatedAt: time.Now().Unix(),
		})
	}
	return posts, nil
}
