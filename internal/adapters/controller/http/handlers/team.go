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

type TeamHandler struct {
	teams    *service.TeamService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTeamHandler(teams *service.TeamService, validate *validator.Validate, log *logger.Logger) *TeamHandler {
	return &TeamHandler{
		teams:    teams,
		validate: validate,
		logger:   log,
	}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.Get(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateTeam
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	team, err := h.teams.Create(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateTeam
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	team, err := h.teams.Update(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.teams.Delete(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *TeamHandler) Roster(w http.ResponseWriter, r *http.Request) {
	athletes, err := h.teams.Roster(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, athletes)
}
