package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dgnsrekt/tv_indicators/internal/browser"
	"github.com/dgnsrekt/tv_indicators/internal/collector"
	"github.com/dgnsrekt/tv_indicators/internal/config"
	"github.com/dgnsrekt/tv_indicators/internal/feed"
	"github.com/dgnsrekt/tv_indicators/internal/indicators"
	"github.com/dgnsrekt/tv_indicators/internal/notify"
)

// NewRootCmd creates the root command for tv_indicators.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tv_indicators",
		Short: "Collect TradingView indicator scripts into a local JSON list",
		Long: `tv_indicators scrapes a TradingView script page for an indicator's
display name and publisher id and appends the result to a local JSON list.

Run "add" for the interactive flow, "list" to inspect the collected
indicators, or "serve" to expose the collector over a local HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("strict", false, "surface silent failures (invalid URL, scrape timeout) as errors")

	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and installs the logger.
// console is the writer that receives log output alongside the rotating
// file; pass nil when the terminal is owned by the TUI prompt.
func setup(cmd *cobra.Command, console io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("strict") {
		strict, _ := cmd.Flags().GetBool("strict")
		cfg.Strict = strict
	}
	if err := setupLogger(cfg.LogLevel, cfg.LogFile, console); err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}
	return cfg, nil
}

// buildService wires the collector stack. broker may be nil when no event
// feed is wanted.
func buildService(cfg *config.Config, broker *feed.Broker) *collector.Service {
	store := indicators.NewStore(cfg.IndicatorsFile)
	provider := browser.NewProvider(cfg)
	scraper := browser.NewScraper(cfg)

	var pub collector.Publisher
	if broker != nil {
		pub = broker
	}
	var ntf collector.Notifier
	if cfg.NTFYEndpoint != "" {
		ntf = notify.New(cfg.NTFYEndpoint, nil)
	}

	return collector.NewService(cfg, provider, scraper, store, pub, ntf)
}

func setupLogger(level, filename string, console io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	var w io.Writer = logWriter
	if console != nil {
		w = io.MultiWriter(console, logWriter)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
