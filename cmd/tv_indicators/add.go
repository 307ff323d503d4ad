package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/tv_indicators/internal/collector"
	"github.com/dgnsrekt/tv_indicators/internal/config"
	"github.com/dgnsrekt/tv_indicators/internal/indicators"
	"github.com/dgnsrekt/tv_indicators/internal/prompt"
)

type prompterFunc func() (string, error)

func (f prompterFunc) AskForURL() (string, error) { return f() }

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [url]",
		Short: "Scrape a script page and append the indicator to the list",
		Long: `Add scrapes a TradingView script page for the indicator name and
publisher id and appends the result to the indicator list. Without an
argument it opens a prompt for the URL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	// The TUI prompt owns the terminal in interactive mode, so logs stay in
	// the file; with a URL argument they mirror to stdout as usual.
	var console io.Writer
	if len(args) == 1 {
		console = os.Stdout
	}
	cfg, err := setup(cmd, console)
	if err != nil {
		return err
	}

	svc := buildService(cfg, nil)

	var rec indicators.Record
	if len(args) == 1 {
		rec, err = svc.AddIndicator(cmd.Context(), args[0])
	} else {
		rec, err = svc.AddFromPrompt(cmd.Context(), prompterFunc(prompt.AskForURL))
	}
	if err != nil {
		return reportAddErr(cfg, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", rec.Name, rec.ID)
	return nil
}

// reportAddErr applies the failure policy: cancellation is always a silent
// no-op; invalid URLs and scrape timeouts stay silent unless strict mode is
// on; browser and store failures always surface.
func reportAddErr(cfg *config.Config, err error) error {
	switch {
	case collector.IsCode(err, collector.CodeCanceled):
		slog.Info("add indicator canceled")
		return nil
	case collector.IsCode(err, collector.CodeValidation),
		collector.IsCode(err, collector.CodeScrapeTimeout):
		if cfg.Strict {
			return err
		}
		slog.Debug("add indicator failed silently", "error", err)
		return nil
	default:
		return err
	}
}
