package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type AthleteHandler struct {
	athletes *service.AthleteService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAthleteHandler(athletes *service.AthleteService, validate *validator.Validate, log *logger.Logger) *AthleteHandler {
	return &AthleteHandler{
		athletes: athletes,
		validate: validate,
		logger:   log,
	}
}

func (h *AthleteHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.AthleteFilter{
		TeamID: query.Get("teamId"),
		Status: query.Get("status"),
		Search: query.Get("search"),
	}
	filter.Offset, _ = strconv.Atoi(query.Get("offset"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	if query.Get("needsPromotion") != "" {
		needsPromotion := query.Get("needsPromotion") == "true"
		filter.NeedsPromotion = &needsPromotion
	}

	athletes, total, err := h.athletes.List(r.Context(), middleware.OrganizationID(r.Context()), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"athletes": athletes,
		"total":    total,
	})
}

func (h *AthleteHandler) Get(w http.ResponseWriter, r *http.Request) {
	athlete, err := h.athletes.Get(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, athlete)
}

func (h *AthleteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateAthlete
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	athlete, err := h.athletes.Create(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, athlete)
}

func (h *AthleteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateAthlete
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	athlete, err := h.athletes.Update(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, athlete)
}

func (h *AthleteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.athletes.Delete(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
