package httpapi

import (
	"net/http"
	"strings"
	"time"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/metrics"
	"leadscout-engine/internal/search"
)

type SearchHandler struct {
	Deps Deps
}

type searchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Industry string `json:"industry"`
	Size     string `json:"company_size"`
	Limit    int    `json:"limit"`
	AutoTag  *bool  `json:"auto_tag"`
}

// params applies the per-endpoint auto-tag default when the request
// leaves auto_tag unset.
func (req searchRequest) params(autoTagDefault bool) search.Params {
	autoTag := autoTagDefault
	if req.AutoTag != nil {
		autoTag = *req.AutoTag
	}
	return search.Params{
		Keywords: req.Keywords,
		Location: req.Location,
		Industry: req.Industry,
		Size:     req.Size,
		Limit:    req.Limit,
		AutoTag:  autoTag,
	}
}

func (h SearchHandler) orchestrator() (*search.Orchestrator, error) {
	cfg := h.Deps.CfgVal.Load().(config.Config)
	return h.Deps.NewOrchestrator(cfg)
}

func (h SearchHandler) People(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orch, err := h.orchestrator()
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	start := time.Now()
	people, err := orch.SearchPeople(r.Context(), req.params(false))
	metrics.SearchDuration.WithLabelValues("people").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("people", "error").Inc()
		WriteDomainError(w, r, err)
		return
	}
	metrics.SearchesTotal.WithLabelValues("people", "ok").Inc()
	writeJSON(w, map[string]any{"count": len(people), "results": people})
}

func (h SearchHandler) Companies(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orch, err := h.orchestrator()
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	start := time.Now()
	companies, err := orch.SearchCompanies(r.Context(), req.params(false))
	metrics.SearchDuration.WithLabelValues("companies").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("companies", "error").Inc()
		WriteDomainError(w, r, err)
		return
	}
	metrics.SearchesTotal.WithLabelValues("companies", "ok").Inc()
	writeJSON(w, map[string]any{"count": len(companies), "results": companies})
}

// Combined auto-tags by default; send auto_tag:false to opt out.
func (h SearchHandler) Combined(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orch, err := h.orchestrator()
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	start := time.Now()
	people, companies, err := orch.SearchCombined(r.Context(), req.params(true))
	metrics.SearchDuration.WithLabelValues("combined").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("combined", "error").Inc()
		WriteDomainError(w, r, err)
		return
	}
	metrics.SearchesTotal.WithLabelValues("combined", "ok").Inc()
	writeJSON(w, map[string]any{
		"count":     len(people) + len(companies),
		"people":    people,
		"companies": companies,
	})
}

type nameSearchRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ByName looks a single name up, as a person, a company, or both.
func (h SearchHandler) ByName(w http.ResponseWriter, r *http.Request) {
	var req nameSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_argument", "name is required")
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Type))
	if kind == "" {
		kind = "auto"
	}

	orch, err := h.orchestrator()
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	p := search.Params{Keywords: req.Name, Limit: 5}

	switch kind {
	case "person":
		people, err := orch.SearchPeople(r.Context(), p)
		if err != nil {
			WriteDomainError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"query": req.Name, "type": kind, "results": people})
	case "company":
		companies, err := orch.SearchCompanies(r.Context(), p)
		if err != nil {
			WriteDomainError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"query": req.Name, "type": kind, "results": companies})
	case "auto":
		people, companies, err := orch.SearchCombined(r.Context(), p)
		if err != nil {
			WriteDomainError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{
			"query": req.Name,
			"type":  kind,
			"results": map[string]any{
				"people":    people,
				"companies": companies,
			},
		})
	default:
		WriteError(w, r, http.StatusBadRequest, "invalid_argument",
			`type must be "person", "company" or "auto"`)
	}
}
