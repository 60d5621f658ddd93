package httpapi

import (
	"encoding/json"
	"net/http"

	"jobforge-engine/internal/secrets"
)

type SecretsHandler struct{}

type setAPIKeyReq struct {
	Name  string `json:"name"` // e.g. ADZUNA_APP_KEY
	Value string `json:"value"`
}

// SetAPIKey stores one upstream credential in the OS keychain. Takes effect
// on the next engine restart; adapters snapshot credentials at startup.
func (h SecretsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req setAPIKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	if err := secrets.SetAPIKey(req.Name, req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
