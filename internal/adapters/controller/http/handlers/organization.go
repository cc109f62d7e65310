package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type OrganizationHandler struct {
	orgs     *service.OrganizationService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewOrganizationHandler(orgs *service.OrganizationService, validate *validator.Validate, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgs:     orgs,
		validate: validate,
		logger:   log,
	}
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgs.Get(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateOrganization
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	org, err := h.orgs.Update(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("logo")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer file.Close()

	org, err := h.orgs.UploadLogo(r.Context(), middleware.OrganizationID(r.Context()), header.Filename, file)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.orgs.ListMembers(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (h *OrganizationHandler) InviteUser(w http.ResponseWriter, r *http.Request) {
	var body dto.InviteUser
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	claims := middleware.Claims(r.Context())
	invitation, err := h.orgs.InviteUser(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID, body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, invitation)
}

func (h *OrganizationHandler) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	var body dto.ChangeMemberRole
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	err := h.orgs.ChangeMemberRole(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "userID"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *OrganizationHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	err := h.orgs.RemoveMember(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "userID"), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *OrganizationHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	var body dto.TransferOwnership
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	claims := middleware.Claims(r.Context())
	err := h.orgs.TransferOwnership(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID, body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *OrganizationHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.orgs.ListRoles(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (h *OrganizationHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateRole
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	role, err := h.orgs.CreateRole(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, role)
}

func (h *OrganizationHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateRole
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	role, err := h.orgs.UpdateRole(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "roleID"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, role)
}

func (h *OrganizationHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	err := h.orgs.DeleteRole(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "roleID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
