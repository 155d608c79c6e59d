package settings

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/qepting91/signal-filter/internal/domain"
)

// Environment variables that override stored settings.
const (
	EnvMinKarma   = "SIGNAL_MIN_KARMA"
	EnvHideIntros = "SIGNAL_HIDE_INTROS"
)

// Provider supplies the configuration for a scan. Get never fails: any
// problem reading overrides degrades to the given defaults.
type Provider interface {
	Get(ctx context.Context, defaults domain.Configuration) domain.Configuration
}

// FileProvider merges defaults with the settings store and the environment.
// Pattern lists are not part of the stored settings; IntroPatterns and
// SpamDomains replace the defaults when set.
type FileProvider struct {
	Store         *Store
	IntroPatterns []string
	SpamDomains   []string
	Logger        *slog.Logger
}

func NewFileProvider(store *Store, logger *slog.Logger) *FileProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProvider{Store: store, Logger: logger}
}

func (p *FileProvider) Get(ctx context.Context, defaults domain.Configuration) domain.Configuration {
	cfg := defaults
	if len(p.IntroPatterns) > 0 {
		cfg.IntroPatterns = p.IntroPatterns
	}
	if len(p.SpamDomains) > 0 {
		cfg.SpamDomains = p.SpamDomains
	}

	if p.Store != nil {
		st, err := p.Store.Load()
		if err != nil {
			p.logger().Warn("settings unavailable, using defaults", "path", p.Store.Path(), "err", err)
		} else {
			if st.MinKarma != nil {
				cfg.MinKarma = *st.MinKarma
			}
			if st.HideIntros != nil {
				cfg.HideIntros = *st.HideIntros
			}
		}
	}

	p.applyEnv(&cfg)
	return cfg.Sanitize()
}

func (p *FileProvider) applyEnv(cfg *domain.Configuration) {
	if v := strings.TrimSpace(os.Getenv(EnvMinKarma)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.logger().Warn("ignoring invalid env override", "var", EnvMinKarma, "value", v)
		} else {
			cfg.MinKarma = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHideIntros)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.logger().Warn("ignoring invalid env override", "var", EnvHideIntros, "value", v)
		} else {
			cfg.HideIntros = b
		}
	}
}

func (p *FileProvider) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Static always returns the same configuration.
type Static domain.Configuration

func (s Static) Get(ctx context.Context, defaults domain.Configuration) domain.Configuration {
	return domain.Configuration(s).Sanitize()
}
