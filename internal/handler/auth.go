package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homeline/homeline-go/internal/middleware"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
	log     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, log: log}
}

// HandleSignup handles POST /api/v1/auth/signup/{userType} requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	role, err := model.ParseRole(chi.URLParam(r, "userType"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var req model.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Signup(r.Context(), req, role)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleSignin handles POST /api/v1/auth/signin requests.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Signin(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleProductKey handles POST /api/v1/auth/key requests.
func (h *AuthHandler) HandleProductKey(w http.ResponseWriter, r *http.Request) {
	var req model.ProductKeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateProductKey(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}
