package httpapi

import (
	"net/http"
	"strings"
	"sync/atomic"

	"leadscout-engine/internal/codec"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/metrics"
	"leadscout-engine/internal/store"
)

type PersistHandler struct {
	Store  *store.LeadStore
	CfgVal *atomic.Value // stores config.Config
}

type saveRequest struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Tag      string `json:"tag"`
	Category string `json:"category"`
}

// Save persists the whole store, or only the bucket named by tag or
// category when one is given.
func (h PersistHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		req.Filename = "leads.json"
	}
	if req.Format == "" {
		req.Format = codec.FormatJSON
	}

	path := resolveDataPath(h.CfgVal, req.Filename)

	var (
		count int
		err   error
	)
	switch {
	case req.Tag != "":
		people := h.Store.LeadsByTag(req.Tag)
		leads := make([]domain.Lead, 0, len(people))
		for _, p := range people {
			leads = append(leads, p)
		}
		count = len(leads)
		err = h.Store.SaveLeads(leads, path, req.Format)
	case req.Category != "":
		companies := h.Store.LeadsByCategory(req.Category)
		leads := make([]domain.Lead, 0, len(companies))
		for _, c := range companies {
			leads = append(leads, c)
		}
		count = len(leads)
		err = h.Store.SaveLeads(leads, path, req.Format)
	default:
		count = len(h.Store.All())
		err = h.Store.Save(path, req.Format)
	}
	if err != nil {
		metrics.PersistenceOpsTotal.WithLabelValues("save", req.Format, "error").Inc()
		WriteDomainError(w, r, err)
		return
	}
	metrics.PersistenceOpsTotal.WithLabelValues("save", req.Format, "ok").Inc()
	writeJSON(w, map[string]any{"saved": count, "path": path})
}

type loadRequest struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
}

func (h PersistHandler) Load(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_argument", "filename is required")
		return
	}
	if req.Format == "" {
		req.Format = codec.FormatJSON
	}

	leads, err := h.Store.Load(resolveDataPath(h.CfgVal, req.Filename), req.Format)
	if err != nil {
		metrics.PersistenceOpsTotal.WithLabelValues("load", req.Format, "error").Inc()
		WriteDomainError(w, r, err)
		return
	}
	metrics.PersistenceOpsTotal.WithLabelValues("load", req.Format, "ok").Inc()
	writeJSON(w, map[string]any{"loaded": len(leads), "leads": leads})
}
