package httpapi

import (
	"net/http"
	"strconv"

	"leadscout-engine/internal/archive"
)

type ArchiveHandler struct {
	Archive *archive.DB // nil when disabled
}

func (h ArchiveHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		WriteError(w, r, http.StatusNotFound, "archive_disabled", "archive is disabled")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := archive.ListRecent(r.Context(), h.Archive.Pool, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "archive_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"count": len(rows), "rows": rows})
}

func (h ArchiveHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		WriteError(w, r, http.StatusNotFound, "archive_disabled", "archive is disabled")
		return
	}

	counts, err := archive.CountByKind(r.Context(), h.Archive.Pool)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "archive_error", err.Error())
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	writeJSON(w, map[string]any{"total": total, "by_kind": counts})
}
