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

type MatchHandler struct {
	matches  *service.MatchService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewMatchHandler(matches *service.MatchService, validate *validator.Validate, log *logger.Logger) *MatchHandler {
	return &MatchHandler{
		matches:  matches,
		validate: validate,
		logger:   log,
	}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.MatchFilter{
		TeamID:   query.Get("teamId"),
		Status:   query.Get("status"),
		Type:     query.Get("type"),
		Season:   query.Get("season"),
		Upcoming: query.Get("upcoming") == "true",
	}
	matches, err := h.matches.List(r.Context(), middleware.OrganizationID(r.Context()), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	match, err := h.matches.Get(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateMatch
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	match, err := h.matches.Create(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, match)
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateMatch
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	match, err := h.matches.Update(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateMatchStatus
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	match, err := h.matches.UpdateStatus(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var body dto.RecordMatchResult
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	match, err := h.matches.RecordResult(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) ReplaceRoster(w http.ResponseWriter, r *http.Request) {
	var body dto.ReplaceRoster
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	err := h.matches.ReplaceRoster(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *MatchHandler) RecordStats(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Stats []dto.AthleteStats `json:"stats" validate:"required,dive"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	err := h.matches.RecordStats(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body.Stats)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.matches.Delete(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
