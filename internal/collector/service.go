// Package collector orchestrates the add-indicator flow: prompt, browser
// session, page scrape and list append.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgnsrekt/tv_indicators/internal/browser"
	"github.com/dgnsrekt/tv_indicators/internal/config"
	"github.com/dgnsrekt/tv_indicators/internal/indicators"
	"github.com/dgnsrekt/tv_indicators/internal/prompt"
)

// Provider creates one browser session per add flow.
type Provider interface {
	NewSession(ctx context.Context) (browser.Session, error)
}

// Scraper extracts the indicator name and publisher id from a script page.
// Absent fields come back as empty strings.
type Scraper interface {
	PineInfo(sess browser.Session, url string) (name, id string)
}

// Store persists the indicator list.
type Store interface {
	Load() ([]indicators.Record, error)
	Append(indicators.Record) error
}

// Prompter blocks until the user submits a URL or cancels.
type Prompter interface {
	AskForURL() (string, error)
}

// Publisher receives every successfully appended record.
type Publisher interface {
	Publish(indicators.Record)
}

// Notifier is told about every successfully appended record. Notification
// failures are logged, never fatal.
type Notifier interface {
	IndicatorAdded(ctx context.Context, name, id string) error
}

// Service runs the add-indicator flow. publisher and notifier may be nil.
type Service struct {
	cfg       *config.Config
	provider  Provider
	scraper   Scraper
	store     Store
	publisher Publisher
	notifier  Notifier
}

// NewService wires the collector. publisher and notifier are optional.
func NewService(cfg *config.Config, provider Provider, scraper Scraper, store Store, publisher Publisher, notifier Notifier) *Service {
	return &Service{
		cfg:       cfg,
		provider:  provider,
		scraper:   scraper,
		store:     store,
		publisher: publisher,
		notifier:  notifier,
	}
}

// ListIndicators returns the full stored list.
func (s *Service) ListIndicators(ctx context.Context) ([]indicators.Record, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, newError(CodeStoreFailure, "failed to read indicator list", err)
	}
	return records, nil
}

// AddFromPrompt asks the user for a URL and runs the add flow with it. A
// dismissed or empty prompt aborts with CodeCanceled; a prompt that failed to
// run at all (for example no usable terminal) is a real error, not a cancel.
func (s *Service) AddFromPrompt(ctx context.Context, p Prompter) (indicators.Record, error) {
	url, err := p.AskForURL()
	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			return indicators.Record{}, newError(CodeCanceled, "URL prompt dismissed", err)
		}
		return indicators.Record{}, fmt.Errorf("url prompt failed: %w", err)
	}
	if url == "" {
		return indicators.Record{}, newError(CodeCanceled, "no URL entered", nil)
	}
	return s.AddIndicator(ctx, url)
}

// AddIndicator validates url, scrapes the script page in a fresh browser
// session and appends the record. The session is always closed before
// returning. The record is only created when both scraped fields are
// non-empty.
func (s *Service) AddIndicator(ctx context.Context, url string) (indicators.Record, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return indicators.Record{}, newError(CodeCanceled, "no URL entered", nil)
	}

	// Validate before touching the browser; an invalid URL must not cost a
	// browser launch.
	if !strings.HasPrefix(url, config.ScriptURLPrefix) {
		slog.Warn("rejected URL without script prefix", "url", url, "prefix", config.ScriptURLPrefix)
		return indicators.Record{}, newError(CodeValidation, "URL must start with "+config.ScriptURLPrefix, nil)
	}

	sess, err := s.provider.NewSession(ctx)
	if err != nil {
		slog.Error("browser session creation failed", "error", err)
		return indicators.Record{}, newError(CodeBrowserUnavailable,
			"unable to create Chrome browser; make sure Google Chrome is installed", err)
	}
	defer sess.Close()

	name, id := s.scraper.PineInfo(sess, url)
	if name == "" || id == "" {
		return indicators.Record{}, newError(CodeScrapeTimeout,
			"indicator name or publisher id not found on page", nil)
	}

	rec := indicators.Record{Name: name, URL: url, ID: id}
	if err := s.store.Append(rec); err != nil {
		return indicators.Record{}, newError(CodeStoreFailure, "failed to append indicator", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(rec)
	}
	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.IndicatorAdded(notifyCtx, rec.Name, rec.ID); err != nil {
			slog.Warn("indicator notification failed", "error", err)
		}
	}

	slog.Info("indicator added", "name", rec.Name, "id", rec.ID, "url", rec.URL)
	return rec, nil
}
