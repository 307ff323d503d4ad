package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Handler upgrades the request to a websocket and streams every published
// record to the client as one JSON text frame per record.
func Handler(b *Broker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			slog.Warn("feed upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		id, ch := b.Subscribe()
		slog.Info("feed subscriber connected", "id", id, "remote", r.RemoteAddr)

		// Writer: drain the subscription until the broker or the peer closes it.
		go func() {
			defer func() {
				b.Unsubscribe(id)
				_ = conn.Close()
				slog.Info("feed subscriber disconnected", "id", id)
			}()
			for rec := range ch {
				payload, err := json.Marshal(rec)
				if err != nil {
					slog.Error("feed marshal failed", "error", err)
					continue
				}
				if err := wsutil.WriteServerText(conn, payload); err != nil {
					slog.Debug("feed write failed", "id", id, "error", err)
					return
				}
			}
		}()

		// Reader: only watches for the peer closing the connection.
		go func() {
			for {
				if _, _, err := wsutil.ReadClientData(conn); err != nil {
					b.Unsubscribe(id)
					_ = conn.Close()
					return
				}
			}
		}()
	})
}
