package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct{}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
}

// Index describes the API surface, mostly so a curl against the bare
// port tells you where to go next.
func (h HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "success",
		"message": "leadscout engine is running",
		"endpoints": map[string]string{
			"GET /":                          "API information",
			"GET /health":                    "liveness",
			"GET /metrics":                   "prometheus metrics",
			"GET /events":                    "SSE event stream",
			"POST /api/search/people":        "search for people",
			"POST /api/search/companies":     "search for companies",
			"POST /api/search/combined":      "search for people and companies",
			"POST /api/search/name":          "look a person or company up by name",
			"POST /api/tag":                  "tag a lead",
			"GET /api/leads":                 "all leads",
			"GET /api/leads/{id}":            "one lead",
			"GET /api/leads/tags/{tag}":      "leads by tag",
			"GET /api/leads/categories/{c}":  "leads by category",
			"GET /api/report":                "leads report",
			"POST /api/report/export":        "write the text report to disk",
			"POST /api/save":                 "save leads to a file",
			"POST /api/load":                 "load leads from a file",
			"GET /api/archive":               "recent archived leads",
			"GET /api/archive/stats":         "archive counts by kind",
			"GET /api/poll/status":           "poller status",
			"POST /api/poll/run":             "trigger one poll pass",
			"GET /config":                    "current config",
			"PUT /config":                    "validate, save and reload config",
			"GET /config/path":               "config file location",
			"GET /config/validate":           "validation report for the live config",
			"POST /api/secrets/imap":         "store the IMAP password in the OS keyring",
			"POST /api/secrets/remote-token": "store the remote API token in the OS keyring",
		},
	})
}
