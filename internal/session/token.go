// Package session reads the saved TradingView session token. The token file
// is written by the login flow of the desktop app; this package is a
// read-only consumer.
package session

import (
	"fmt"
	"os"
	"strings"
)

// ReadToken returns the saved session token, or an empty string when no token
// has been saved. An anonymous session is a valid outcome, so a missing file
// is not an error.
func ReadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("session: read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
