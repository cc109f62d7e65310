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

type TransportHandler struct {
	transport *service.TransportService
	validate  *validator.Validate
	logger    *logger.Logger
}

func NewTransportHandler(transport *service.TransportService, validate *validator.Validate, log *logger.Logger) *TransportHandler {
	return &TransportHandler{
		transport: transport,
		validate:  validate,
		logger:    log,
	}
}

func (h *TransportHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.transport.ListZones(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, zones)
}

func (h *TransportHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateZone
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	zone, err := h.transport.CreateZone(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, zone)
}

func (h *TransportHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	err := h.transport.DeleteZone(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *TransportHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := h.transport.ListBuses(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, buses)
}

func (h *TransportHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateBus
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	bus, err := h.transport.CreateBus(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, bus)
}

func (h *TransportHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.transport.ListRoutes(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, routes)
}

func (h *TransportHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateBusRoute
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	route, err := h.transport.CreateRoute(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, route)
}

func (h *TransportHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var body dto.AssignTransport
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	assignment, err := h.transport.Assign(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

func (h *TransportHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	err := h.transport.Unassign(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *TransportHandler) Utilization(w http.ResponseWriter, r *http.Request) {
	utilization, err := h.transport.Utilization(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, utilization)
}
