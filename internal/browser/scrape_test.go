package browser

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgnsrekt/tv_indicators/internal/config"
)

// deadSession carries an already-canceled context, so every chromedp action
// against it fails immediately, standing in for an element wait that never
// resolves.
type deadSession struct {
	ctx context.Context
}

func (d *deadSession) Context() context.Context { return d.ctx }
func (d *deadSession) Close()                   {}

func newDeadSession() *deadSession {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return &deadSession{ctx: ctx}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(oldLogger) })
	return &buf
}

func newTestScraper() *Scraper {
	return NewScraper(&config.Config{
		PineNameSelector: `div[class^="tv-chart-view__title-name"]`,
		PineIDSelector:   `button[data-script-id-part]`,
		PineIDAttr:       "data-script-id-part",
		ScrapeTimeoutMS:  50,
		NavTimeoutMS:     50,
	})
}

func TestPineNameWaitFailureLogsAndReturnsEmpty(t *testing.T) {
	buf := captureLog(t)
	s := newTestScraper()

	got := s.pineName(newDeadSession())

	if got != "" {
		t.Errorf("pineName() = %q; want empty on failed wait", got)
	}
	if !strings.Contains(buf.String(), "unable to find pine name") {
		t.Errorf("expected pine name error log, got %q", buf.String())
	}
}

func TestPineIDWaitFailureLogsAndReturnsEmpty(t *testing.T) {
	buf := captureLog(t)
	s := newTestScraper()

	got := s.pineID(newDeadSession())

	if got != "" {
		t.Errorf("pineID() = %q; want empty on failed wait", got)
	}
	if !strings.Contains(buf.String(), "unable to find pine ID") {
		t.Errorf("expected pine ID error log, got %q", buf.String())
	}
}

func TestPineInfoNavigationFailureLogsAndReturnsBothEmpty(t *testing.T) {
	buf := captureLog(t)
	s := newTestScraper()

	name, id := s.PineInfo(newDeadSession(), "https://www.tradingview.com/script/abc123")

	if name != "" || id != "" {
		t.Errorf("PineInfo() = (%q, %q); want both empty on failed navigation", name, id)
	}
	if !strings.Contains(buf.String(), "navigation to script page failed") {
		t.Errorf("expected navigation error log, got %q", buf.String())
	}
}
