package httpapi

import (
	"net/http"
	"sync/atomic"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setIMAPPasswordReq struct {
	Password string `json:"password"`
}

func (h SecretsHandler) SetIMAPPassword(w http.ResponseWriter, r *http.Request) {
	var req setIMAPPasswordReq
	if !decodeBody(w, r, &req) {
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetIMAPPassword(secrets.IMAPKeyringAccount(cfg), req.Password); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", "failed to store password: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setRemoteTokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetRemoteToken(w http.ResponseWriter, r *http.Request) {
	var req setRemoteTokenReq
	if !decodeBody(w, r, &req) {
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetRemoteToken(secrets.RemoteKeyringAccount(cfg), req.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", "failed to store token: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
