package httphandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ericfisherdev/maskpreview/internal/application"
)

// StateEvents streams the store as Server-Sent Events. The current snapshot is
// sent on connect, then one "state" event per write. A slow client only ever
// misses intermediate snapshots, never the latest one.
func (h *Handler) StateEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Long-lived stream: lift the server's read and write timeouts.
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates := make(chan application.Snapshot, 1)
	unsubscribe := h.store.Subscribe(func(s application.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
			}
			// Drop the stale pending snapshot in favour of s.
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := writeEvent(w, rc, h.store.Snapshot()); err != nil {
		h.logger.Debug("state stream closed", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if err := writeEvent(w, rc, snap); err != nil {
				h.logger.Debug("state stream closed", "error", err)
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, snap application.Snapshot) error {
	data, err := json.Marshal(toStateResponse(snap))
	if err != nil {
		return fmt.Errorf("marshaling state event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: state\ndata: %s\n\n", snap.Version, data); err != nil {
		return err
	}
	return rc.Flush()
}
