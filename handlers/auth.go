package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sleeper-league-bot/interfaces"
	"sleeper-league-bot/services"
)

// AuthHandler handles operator login
type AuthHandler struct {
	auth interfaces.Authenticator
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(auth interfaces.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Key string `json:"key"`
}

// LoginAPI exchanges the admin key for a bearer token
func (h *AuthHandler) LoginAPI(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	token, err := h.auth.Login(req.Key)
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "operator login is not configured")
		return
	case err != nil:
		logger.Warnf("Login rejected from %s", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid key")
		return
	}

	logger.Infof("Operator logged in from %s", r.RemoteAddr)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
