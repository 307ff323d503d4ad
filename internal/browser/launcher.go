package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/dgnsrekt/tv_indicators/internal/config"
	"github.com/dgnsrekt/tv_indicators/internal/session"
)

// Provider creates authenticated headless browser sessions. Each NewSession
// call launches a fresh browser, opens the published-scripts page and, when a
// saved session token exists, attaches it as the sessionid cookie.
type Provider struct {
	cfg *config.Config
}

// NewProvider creates a session provider with the given config.
func NewProvider(cfg *config.Config) *Provider {
	return &Provider{cfg: cfg}
}

// detectBrowser finds an available Chrome/Chromium binary.
func detectBrowser() (string, error) {
	candidates := []string{"google-chrome", "chromium-browser", "chromium"}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	if runtime.GOOS == "darwin" {
		macPath := "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
		if _, err := os.Stat(macPath); err == nil {
			return macPath, nil
		}
	}
	return "", fmt.Errorf("no supported browser found (tried google-chrome, chromium-browser, chromium)")
}

// NewSession launches a headless browser, navigates to the published-scripts
// page and attaches the saved session cookie when one is available. An
// anonymous session (no saved token) is a valid outcome. The returned Session
// must be closed by the caller.
func (p *Provider) NewSession(ctx context.Context) (Session, error) {
	browserPath, err := detectBrowser()
	if err != nil {
		return nil, err
	}
	slog.Debug("detected browser", "path", browserPath)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(browserPath),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	// The allocator hangs off Background so the browser lifetime is bound to
	// Close, not to the launch deadline.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	b := &Browser{ctx: tabCtx, cancel: tabCancel, allocCancel: allocCancel}

	launchCtx, launchCancel := context.WithTimeout(tabCtx, time.Duration(p.cfg.LaunchTimeoutMS)*time.Millisecond)
	defer launchCancel()

	if err := ctx.Err(); err != nil {
		b.Close()
		return nil, err
	}

	if err := chromedp.Run(launchCtx, chromedp.Navigate(config.PublishedScriptsURL)); err != nil {
		b.Close()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	token, err := session.ReadToken(p.cfg.SessionFile)
	if err != nil {
		slog.Warn("failed to read saved session token, continuing anonymous", "error", err)
		token = ""
	}

	if token != "" {
		err := chromedp.Run(launchCtx, chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookie(config.SessionCookieName, token).
				WithDomain(config.CookieDomain).
				WithPath(config.CookiePath).
				Do(ctx)
		}))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("attach session cookie: %w", err)
		}
		slog.Info("session cookie attached", "domain", config.CookieDomain)
	} else {
		slog.Info("no saved session token, using anonymous session")
	}

	return b, nil
}
