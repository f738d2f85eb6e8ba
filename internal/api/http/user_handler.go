package http

import (
	"net/http"
	"strconv"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"

	"github.com/gorilla/mux"
)

// UserHandler exposes admin user management plus self lookup.
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type createUserRequest struct {
	Name string          `json:"name"`
	Pin  string          `json:"pin"`
	Role domain.UserRole `json:"role"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Role == "" {
		req.Role = domain.UserRoleChild
	}

	user, err := h.userSvc.CreateUser(r.Context(), claims.UserID, req.Name, req.Pin, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	// Children may only look at themselves.
	if claims.Role != domain.UserRoleAdmin && claims.UserID != int32(id) {
		writeError(w, domain.ErrForbidden)
		return
	}

	user, err := h.userSvc.GetUser(r.Context(), int32(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
