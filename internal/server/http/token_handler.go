package http

import (
	"net/http"

	"github.com/dmitrijs2005/stashboard/internal/common"
)

type tokenRequest struct {
	Owner  string `json:"owner"`
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateToken exchanges profile credentials for a bearer token.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	secret := []byte(req.Secret)
	defer common.WipeByteArray(secret)

	access, err := h.profiles.Authenticate(r.Context(), req.Owner, req.Token, secret)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, TokenType: "Bearer"})
}
