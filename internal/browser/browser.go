// Package browser creates headless Chrome sessions over CDP and scrapes
// indicator pages.
package browser

import "context"

// Session is a live browser usable for one add-indicator flow. Close releases
// the tab and the browser process.
type Session interface {
	Context() context.Context
	Close()
}

// Browser is a chromedp-backed Session.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// Context returns the chromedp tab context for running actions.
func (b *Browser) Context() context.Context {
	return b.ctx
}

// Close tears down the tab and the allocator, terminating the browser
// process this session launched.
func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
}
