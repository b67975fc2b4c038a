package httpapi

import (
	"context"
	"net/http"

	"leadscout-engine/internal/poll"
)

type PollHandler struct {
	Poller *poll.Poller
}

func (h PollHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Poller.Status())
}

// Run triggers one poll cycle in the background. The run outlives the
// request, so it gets a fresh context.
func (h PollHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.Poller.TriggerAsync(context.Background()) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
