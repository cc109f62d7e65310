package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type AuthHandler struct {
	auth     *service.AuthService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, validate *validator.Validate, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		validate: validate,
		logger:   log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body dto.Login
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	result, err := h.auth.Login(r.Context(), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) LoginSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var body dto.Login
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	result, err := h.auth.LoginSuperAdmin(r.Context(), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body dto.Register
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	result, err := h.auth.Register(r.Context(), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body dto.RefreshToken
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	pair, err := h.auth.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var body dto.RefreshToken
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.auth.Logout(r.Context(), body.RefreshToken); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) SwitchOrganization(w http.ResponseWriter, r *http.Request) {
	var body dto.SwitchOrganization
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	claims := middleware.Claims(r.Context())
	result, err := h.auth.SwitchOrganization(r.Context(), claims.UserID, body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) MyOrganizations(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	memberships, err := h.auth.UserOrganizations(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, memberships)
}
