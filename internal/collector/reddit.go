package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/signal-filter/internal/domain"
	"golang.org/x/time/rate"
)

// RedditClient reads a subreddit as a feed; score is used as karma.
type RedditClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

// NewRedditClient uses script-app credentials when an id is given and the
// read-only client otherwise.
func NewRedditClient(id, secret, user, pass, userAgent string) (*RedditClient, error) {
	var (
		client *reddit.Client
		err    error
	)
	if id == "" {
		client, err = reddit.NewReadonlyClient(reddit.WithUserAgent(userAgent))
	} else {
		creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}
		client, err = reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	}
	if err != nil {
		return nil, fmt.Errorf("create reddit client: %w", err)
	}

	// 100 requests / 10 mins = ~1 request every 600ms
	limiter := rate.NewLimiter(rate.Every(600*time.Millisecond), 1)

	return &RedditClient{client: client, limiter: limiter}, nil
}

func (rc *RedditClient) FetchPosts(ctx context.Context, target domain.Target, limit int) ([]domain.Post, error) {
	if err := rc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := rc.client.Subreddit.NewPosts(ctx, target.Submolt, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("reddit api error: %w", err)
	}

	result := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		var created int64
		if p.Created != nil {
			created = p.Created.Time.Unix()
		}
		result = append(result, domain.Post{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Body,
			Submolt:   p.SubredditNamePrefixed,
			Author:    p.Author,
			URL:       p.URL,
			Karma:     p.Score,
			CreatedAt: created,
		})
	}
	return result, nil
}
