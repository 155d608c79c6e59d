package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/qepting91/signal-filter/internal/scanner"
)

// Status is a transient hidden-count banner. Each report replaces the
// previous one, and a banner disappears BannerTTL after it was reported.
type Status struct {
	mu      sync.Mutex
	hidden  int
	expires time.Time
	now     func() time.Time
}

// StatusMessage is the JSON shape served at /status.
type StatusMessage struct {
	Active bool   `json:"active"`
	Hidden int    `json:"hidden,omitempty"`
	Text   string `json:"text,omitempty"`
}

func NewStatus(now func() time.Time) *Status {
	if now == nil {
		now = time.Now
	}
	return &Status{now: now}
}

func (s *Status) Report(ctx context.Context, hidden int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = hidden
	s.expires = s.now().Add(scanner.BannerTTL)
}

func (s *Status) Current() StatusMessage {
	if s == nil {
		return StatusMessage{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hidden == 0 || !s.now().Before(s.expires) {
		return StatusMessage{}
	}
	return StatusMessage{Active: true, Hidden: s.hidden, Text: scanner.BannerText(s.hidden)}
}
