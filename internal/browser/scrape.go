package browser

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/dgnsrekt/tv_indicators/internal/config"
)

// Scraper extracts the indicator name and publisher id from a script page.
type Scraper struct {
	cfg *config.Config
}

// NewScraper creates a scraper with the given config.
func NewScraper(cfg *config.Config) *Scraper {
	return &Scraper{cfg: cfg}
}

// PineInfo navigates the session to url and reads the indicator name and the
// publisher id attribute. Each field gets its own bounded wait; a timeout on
// one field logs an error and leaves that field empty without aborting the
// other. Absent fields come back as empty strings, never as an error.
func (s *Scraper) PineInfo(sess Session, url string) (name, id string) {
	navCtx, navCancel := context.WithTimeout(sess.Context(), time.Duration(s.cfg.NavTimeoutMS)*time.Millisecond)
	defer navCancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		slog.Error("navigation to script page failed", "url", url, "error", err)
		return "", ""
	}

	name = s.pineName(sess)
	id = s.pineID(sess)
	return name, id
}

// pineName waits for the name element to become clickable and reads its text.
func (s *Scraper) pineName(sess Session) string {
	waitCtx, cancel := context.WithTimeout(sess.Context(), time.Duration(s.cfg.ScrapeTimeoutMS)*time.Millisecond)
	defer cancel()

	var text string
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(s.cfg.PineNameSelector, chromedp.ByQuery),
		chromedp.WaitEnabled(s.cfg.PineNameSelector, chromedp.ByQuery),
		chromedp.Text(s.cfg.PineNameSelector, &text, chromedp.ByQuery),
	)
	if err != nil {
		slog.Error("unable to find pine name", "selector", s.cfg.PineNameSelector, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// pineID waits for the id-bearing element and reads the publisher id attribute.
func (s *Scraper) pineID(sess Session) string {
	waitCtx, cancel := context.WithTimeout(sess.Context(), time.Duration(s.cfg.ScrapeTimeoutMS)*time.Millisecond)
	defer cancel()

	var value string
	var ok bool
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(s.cfg.PineIDSelector, chromedp.ByQuery),
		chromedp.WaitEnabled(s.cfg.PineIDSelector, chromedp.ByQuery),
		chromedp.AttributeValue(s.cfg.PineIDSelector, s.cfg.PineIDAttr, &value, &ok, chromedp.ByQuery),
	)
	if err != nil {
		slog.Error("unable to find pine ID", "selector", s.cfg.PineIDSelector, "error", err)
		return ""
	}
	if !ok {
		slog.Error("pine ID element missing attribute", "selector", s.cfg.PineIDSelector, "attr", s.cfg.PineIDAttr)
		return ""
	}
	return value
}
