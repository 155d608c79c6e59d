package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	BannerID = "signal-filter-stats"
	// BannerTTL is how long a status banner stays meaningful.
	BannerTTL = 5 * time.Second

	bannerStyle = "position:fixed;top:10px;right:10px;background:#1a1a2e;color:#fff;padding:10px 15px;border-radius:8px;z-index:9999;font-family:monospace;font-size:12px;"
)

// BannerText is the status line shown for a hidden count.
func BannerText(hidden int) string {
	return fmt.Sprintf("Filtered %d low-signal posts", hidden)
}

// placeBanner replaces any existing banner with a fresh one.
func (s *Scanner) placeBanner(doc *goquery.Document, hidden int) {
	doc.Find("#" + BannerID).Remove()
	expires := s.now().Add(BannerTTL).UTC().Format(time.RFC3339)
	doc.Find("body").AppendHtml(fmt.Sprintf(
		`<div id="%s" data-expires-at="%s" style="%s">%s</div>`,
		BannerID, expires, bannerStyle, BannerText(hidden)))
}

// LogReporter writes the hidden count to the log.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(ctx context.Context, hidden int) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "filtered low-signal posts", "hidden", hidden)
}
