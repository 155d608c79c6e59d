package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/qepting91/signal-filter/internal/domain"
	"golang.org/x/time/rate"
)

const DefaultMoltbookURL = "https://www.moltbook.com/api/v1"

type MoltbookClient struct {
	httpClient *retryablehttp.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	sort       string
}

type moltbookResponse struct {
	Posts []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		URL       string `json:"url"`
		Upvotes   int    `json:"upvotes"`
		Downvotes int    `json:"downvotes"`
		CreatedAt string `json:"created_at"`
		Author    struct {
			Name string `json:"name"`
		} `json:"author"`
		Submolt struct {
			Name string `json:"name"`
		} `json:"submolt"`
	} `json:"posts"`
}

// leveledSlog adapts slog for retryablehttp, demoting errors since they are retried.
type leveledSlog struct {
	inner *slog.Logger
}

func (l leveledSlog) Error(msg string, kv ...any) { l.inner.Warn(msg, kv...) }
func (l leveledSlog) Warn(msg string, kv ...any)  { l.inner.Warn(msg, kv...) }
func (l leveledSlog) Info(msg string, kv ...any)  { l.inner.Debug(msg, kv...) }
func (l leveledSlog) Debug(msg string, kv ...any) { l.inner.Debug(msg, kv...) }

func NewMoltbookClient(baseURL, apiKey, sort string, logger *slog.Logger) (*MoltbookClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("moltbook api key is required")
	}
	if baseURL == "" {
		baseURL = DefaultMoltbookURL
	}
	if sort == "" {
		sort = "hot"
	}
	if logger == nil {
		logger = slog.Default()
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.RetryWaitMin = 500 * time.Millisecond
	hc.RetryWaitMax = 5 * time.Second
	hc.HTTPClient.Timeout = 10 * time.Second
	hc.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: logger})

	return &MoltbookClient{
		httpClient: hc,
		// 1 req/s keeps well under the API's published limits
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL: baseURL,
		apiKey:  apiKey,
		sort:    sort,
	}, nil
}

func (mc *MoltbookClient) FetchPosts(ctx context.Context, target domain.Target, limit int) ([]domain.Post, error) {
	if err := mc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("sort", mc.sort)
	q.Set("limit", strconv.Itoa(limit))
	if target.Submolt != "" {
		q.Set("submolt", target.Submolt)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, mc.baseURL+"/posts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build moltbook request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+mc.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := mc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moltbook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moltbook status: %d", resp.StatusCode)
	}

	var mResp moltbookResponse
	if err := json.NewDecoder(resp.Body).Decode(&mResp); err != nil {
		return nil, fmt.Errorf("decode moltbook posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(mResp.Posts))
	for _, p := range mResp.Posts {
		var created int64
		if ts, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			created = ts.Unix()
		}
		posts = append(posts, domain.Post{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Submolt:   p.Submolt.Name,
			Author:    p.Author.Name,
			URL:       p.URL,
			Karma:     p.Upvotes - p.Downvotes,
			CreatedAt: created,
		})
	}
	return posts, nil
}
