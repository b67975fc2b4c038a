package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"leadscout-engine/internal/archive"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/logger"
	"leadscout-engine/internal/metrics"
	"leadscout-engine/internal/store"
)

type LeadsHandler struct {
	Store   *store.LeadStore
	Hub     *events.Hub
	Archive *archive.DB // nil when disabled
}

// List returns the full collection, or the subset matching ?tags=a,b
// (person tag or company category, any-of).
func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	var leads []domain.Lead
	if raw := r.URL.Query().Get("tags"); raw != "" {
		leads = h.Store.FilterByTags(strings.Split(raw, ","))
	} else {
		leads = h.Store.All()
	}
	writeJSON(w, map[string]any{"count": len(leads), "leads": leads})
}

func (h LeadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Store.Find(chi.URLParam(r, "id"))
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	writeJSON(w, lead)
}

type tagRequest struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

func (h LeadsHandler) Tag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	lead, err := h.Store.Tag(req.ID, req.Tag)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	metrics.LeadsTaggedTotal.Inc()

	// Keep the archived copy in step with the live record.
	if h.Archive != nil {
		if err := archive.UpdateLeadPayload(h.Archive.Pool, lead); err != nil {
			logger.FromContext(r.Context()).Warn("archive payload update failed",
				zap.String("id", req.ID), zap.Error(err))
		}
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadTagged, 1,
		map[string]any{"id": req.ID, "tag": req.Tag}))
	writeJSON(w, lead)
}

func (h LeadsHandler) ByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	leads := h.Store.LeadsByTag(tag)
	writeJSON(w, map[string]any{"tag": tag, "count": len(leads), "leads": leads})
}

func (h LeadsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	leads := h.Store.LeadsByCategory(category)
	writeJSON(w, map[string]any{"category": category, "count": len(leads), "leads": leads})
}
