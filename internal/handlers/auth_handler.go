package handlers

import (
	"encoding/json"
	"net/http"

	"neighborly/internal/security"
)

// AuthHandler issues API tokens to the registry administrator.
type AuthHandler struct {
	tokens            *security.TokenIssuer
	adminPasswordHash string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens *security.TokenIssuer, adminPasswordHash string) *AuthHandler {
	return &AuthHandler{
		tokens:            tokens,
		adminPasswordHash: adminPasswordHash,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the admin password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.adminPasswordHash == "" {
		respondWithError(w, http.StatusServiceUnavailable, "Admin login is not configured", "", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if !security.CheckPassword(h.adminPasswordHash, req.Password) {
		respondWithError(w, http.StatusUnauthorized, "Invalid password", "", nil)
		return
	}

	token, err := h.tokens.Issue("admin")
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token", "Token issue failed", err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token})
}
