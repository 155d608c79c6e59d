package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/qepting91/signal-filter/internal/ingest"
	"github.com/qepting91/signal-filter/internal/settings"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	settingsPath  string
	introPatterns string
	spamDomains   string
	logLevel      string
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "signalfilter",
		Short: "Hide low-signal posts from a feed",
		Long: `signalfilter hides low-signal feed posts: low karma, introduction
boilerplate, short spam links and titles repeated three or more times.

It can filter a rendered HTML feed document (scan, optionally rescanning on
change with --watch), filter posts pulled from a feed API (fetch), and chart
what it filtered (serve).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(g.logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&g.settingsPath, "settings", envOr("SIGNAL_SETTINGS", "data/settings.yaml"), "Settings file (YAML)")
	cmd.PersistentFlags().StringVar(&g.introPatterns, "intro-patterns", "", "CSV of intro phrases replacing the built-in list")
	cmd.PersistentFlags().StringVar(&g.spamDomains, "spam-domains", "", "CSV of spam domains replacing the built-in list")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(scanCmd(g), fetchCmd(g), serveCmd(), settingsCmd(g))
	return cmd
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

// provider builds the single configuration path every scan goes through.
func (g *globalFlags) provider() (*settings.FileProvider, error) {
	p := settings.NewFileProvider(settings.NewStore(g.settingsPath), slog.Default())
	if g.introPatterns != "" {
		patterns, err := ingest.LoadPatterns(g.introPatterns)
		if err != nil {
			return nil, fmt.Errorf("load intro patterns: %w", err)
		}
		p.IntroPatterns = patterns
	}
	if g.spamDomains != "" {
		domains, err := ingest.LoadPatterns(g.spamDomains)
		if err != nil {
			return nil, fmt.Errorf("load spam domains: %w", err)
		}
		p.SpamDomains = domains
	}
	return p, nil
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
