package collector

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/qepting91/signal-filter/internal/domain"
)

// NewCollector selects the correct implementation based on the mode
func NewCollector(mode string, logger *slog.Logger) (domain.Collector, error) {
	switch mode {
	case "moltbook":
		return NewMoltbookClient(
			os.Getenv("MOLTBOOK_API_URL"),
			os.Getenv("MOLTBOOK_API_KEY"),
			os.Getenv("MOLTBOOK_SORT"),
			logger,
		)
	case "reddit":
		userAgent := os.Getenv("REDDIT_USER_AGENT")
		if userAgent == "" {
			return nil, fmt.Errorf("REDDIT_USER_AGENT is required for reddit mode")
		}
		return NewRedditClient(
			os.Getenv("REDDIT_CLIENT_ID"),
			os.Getenv("REDDIT_CLIENT_SECRET"),
			os.Getenv("REDDIT_USERNAME"),
			os.Getenv("REDDIT_PASSWORD"),
			userAgent,
		)
	case "mock":
		return NewMockClient(time.Now().UnixNano()), nil
	default:
		return nil, fmt.Errorf("unknown collector mode: %q (use 'moltbook', 'reddit', or 'mock')", mode)
	}
}
