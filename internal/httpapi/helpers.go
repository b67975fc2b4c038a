package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"leadscout-engine/internal/config"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

// decodeBody fills dst from the request body. An empty body is fine;
// the handler's defaults take over.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
	return false
}

// resolveDataPath anchors relative filenames in the configured data dir.
func resolveDataPath(cfgVal *atomic.Value, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	cfg := cfgVal.Load().(config.Config)
	return filepath.Join(cfg.App.DataDir, name)
}
