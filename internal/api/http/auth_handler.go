package http

import (
	"net/http"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"
)

// AuthHandler handles PIN login.
type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Pin        string `json:"pin"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Identifier == "" || req.Pin == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "identifier and pin are required"})
		return
	}

	user, token, err := h.authSvc.Login(r.Context(), req.Identifier, req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
