// Package scanner applies the classifier to the posts of an HTML feed document.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/qepting91/signal-filter/internal/classify"
	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/settings"
)

const (
	// FilteredByAttr marks posts hidden by this filter.
	FilteredByAttr  = "data-filtered-by"
	FilteredByValue = "signal-filter"
)

// Selectors locate a post and its parts in the document.
type Selectors struct {
	Post    string
	Karma   string
	Title   string
	Content string
}

// DefaultSelectors matches the feed markup the filter was written for.
func DefaultSelectors() Selectors {
	return Selectors{
		Post:    "[data-post-id]",
		Karma:   ".karma-score",
		Title:   ".post-title",
		Content: ".post-content",
	}
}

// Reporter is told how many posts a scan hid. Only called when at least one was.
type Reporter interface {
	Report(ctx context.Context, hidden int)
}

// Result summarizes one scan.
type Result struct {
	Total    int
	Hidden   int
	ByReason map[domain.Reason]int
}

// Scanner classifies the posts of a document against the current configuration.
type Scanner struct {
	provider  settings.Provider
	tracker   *classify.DuplicateTracker
	defaults  domain.Configuration
	selectors Selectors
	reporters []Reporter
	banner    bool
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSelectors overrides how posts and their parts are located.
func WithSelectors(sel Selectors) Option {
	return func(s *Scanner) { s.selectors = sel }
}

// WithReporters adds reporters told about each scan that hid posts.
func WithReporters(r ...Reporter) Option {
	return func(s *Scanner) { s.reporters = append(s.reporters, r...) }
}

// WithBanner injects the hidden-count banner into scanned documents.
func WithBanner() Option {
	return func(s *Scanner) { s.banner = true }
}

// WithDefaults sets the configuration handed to the provider as defaults.
func WithDefaults(cfg domain.Configuration) Option {
	return func(s *Scanner) { s.defaults = cfg }
}

// WithClock replaces time.Now for banner expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// WithLogger sets the scan logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New returns a Scanner. A nil tracker gets a fresh process-lifetime one.
func New(provider settings.Provider, tracker *classify.DuplicateTracker, opts ...Option) *Scanner {
	s := &Scanner{
		provider:  provider,
		tracker:   tracker,
		defaults:  domain.DefaultConfiguration(),
		selectors: DefaultSelectors(),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracker == nil {
		s.tracker = classify.NewDuplicateTracker()
	}
	return s
}

// Scan classifies every post in doc and hides the low-signal ones in place.
func (s *Scanner) Scan(ctx context.Context, doc *goquery.Document) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	cfg := s.provider.Get(ctx, s.defaults)
	s.tracker.BeginScan()
	scansTotal.Inc()

	res := Result{ByReason: make(map[domain.Reason]int)}
	doc.Find(s.selectors.Post).Each(func(_ int, post *goquery.Selection) {
		res.Total++
		verdict := classify.Classify(s.attributes(post), cfg, s.tracker)
		if !verdict.Hide {
			return
		}
		hide(post)
		res.Hidden++
		for _, r := range verdict.Reasons {
			res.ByReason[r]++
			postsHidden.WithLabelValues(string(r)).Inc()
		}
	})
	postsScanned.Add(float64(res.Total))

	s.logger.Debug("scan complete", "posts", res.Total, "hidden", res.Hidden)
	if res.Hidden > 0 {
		if s.banner {
			s.placeBanner(doc, res.Hidden)
		}
		for _, r := range s.reporters {
			r.Report(ctx, res.Hidden)
		}
	}
	return res, nil
}

// ScanFile scans the HTML document at in and writes the filtered document to out.
func (s *Scanner) ScanFile(ctx context.Context, in, out string) (Result, error) {
	f, err := os.Open(in)
	if err != nil {
		return Result{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return Result{}, fmt.Errorf("parse document %s: %w", in, err)
	}

	res, err := s.Scan(ctx, doc)
	if err != nil {
		return res, err
	}

	html, err := doc.Html()
	if err != nil {
		return res, fmt.Errorf("render document: %w", err)
	}
	if err := os.WriteFile(out, []byte(html), 0644); err != nil {
		return res, fmt.Errorf("write document: %w", err)
	}
	return res, nil
}

func (s *Scanner) attributes(post *goquery.Selection) domain.PostAttributes {
	var attrs domain.PostAttributes
	if el := post.Find(s.selectors.Karma).First(); el.Length() > 0 {
		attrs.Karma = classify.ParseKarma(el.Text())
	}
	if el := post.Find(s.selectors.Title).First(); el.Length() > 0 {
		attrs.Title = el.Text()
	}
	if el := post.Find(s.selectors.Content).First(); el.Length() > 0 {
		attrs.Content = el.Text()
	}
	return attrs
}

// hide sets display:none, keeping whatever inline style the post already had.
func hide(post *goquery.Selection) {
	style := strings.TrimSpace(post.AttrOr("style", ""))
	if !strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		if style != "" && !strings.HasSuffix(style, ";") {
			style += ";"
		}
		style += "display:none;"
	}
	post.SetAttr("style", style)
	post.SetAttr(FilteredByAttr, FilteredByValue)
}

// IsHidden reports whether the filter has hidden post.
func IsHidden(post *goquery.Selection) bool {
	return post.AttrOr(FilteredByAttr, "") == FilteredByValue
}
