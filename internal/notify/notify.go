// Package notify pushes plain-text notifications to an ntfy-style endpoint.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Notifier posts messages to a single endpoint. A Notifier with an empty
// endpoint is a no-op.
type Notifier struct {
	endpoint string
	client   *http.Client
}

// New creates a Notifier. client may be nil, in which case
// http.DefaultClient is used.
func New(endpoint string, client *http.Client) *Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &Notifier{endpoint: endpoint, client: client}
}

// IndicatorAdded sends a notification for a freshly appended indicator.
func (n *Notifier) IndicatorAdded(ctx context.Context, name, id string) error {
	return n.Send(ctx, fmt.Sprintf("Indicator added: %s (%s)", name, id))
}

// Send posts message to the endpoint using HTTP POST.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.endpoint == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy notification failed: status=%d", resp.StatusCode)
	}
	return nil
}
