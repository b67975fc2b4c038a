package httpapi

import (
	"net/http"
	"strings"
	"sync/atomic"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"
)

type ReportHandler struct {
	Store  *store.LeadStore
	CfgVal *atomic.Value // stores config.Config
}

type reportResponse struct {
	store.ReportSummary
	People    []*domain.Person  `json:"people"`
	Companies []*domain.Company `json:"companies"`
}

func (h ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	people := make([]*domain.Person, 0)
	companies := make([]*domain.Company, 0)
	for _, l := range h.Store.All() {
		switch v := l.(type) {
		case *domain.Person:
			people = append(people, v)
		case *domain.Company:
			companies = append(companies, v)
		}
	}

	writeJSON(w, reportResponse{
		ReportSummary: h.Store.Report(),
		People:        people,
		Companies:     companies,
	})
}

type exportRequest struct {
	Filename string `json:"filename"`
}

// Export writes the plain-text report to disk and returns its path.
func (h ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Filename)
	if name == "" {
		name = "leads_report.txt"
	}
	path := resolveDataPath(h.CfgVal, name)

	if err := h.Store.WriteReport(path); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "path": path})
}
