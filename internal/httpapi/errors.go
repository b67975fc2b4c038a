package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"leadscout-engine/internal/domain"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteDomainError maps the domain error taxonomy onto HTTP statuses.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		WriteError(w, r, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, domain.ErrInvalidLeadKind):
		WriteError(w, r, http.StatusBadRequest, "invalid_lead_kind", err.Error())
	case errors.Is(err, domain.ErrEmptyCollection):
		WriteError(w, r, http.StatusBadRequest, "empty_collection", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrParse):
		WriteError(w, r, http.StatusUnprocessableEntity, "parse_error", err.Error())
	case errors.Is(err, domain.ErrSourceUnavailable):
		WriteError(w, r, http.StatusBadGateway, "source_unavailable", err.Error())
	case errors.Is(err, domain.ErrWrite):
		WriteError(w, r, http.StatusInternalServerError, "write_error", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
