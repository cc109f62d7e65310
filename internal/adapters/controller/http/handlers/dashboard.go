package handlers

import (
	"net/http"
	"strconv"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	audits    *service.AuditService
	logger    *logger.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, audits *service.AuditService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		audits:    audits,
		logger:    log,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.audits.List(r.Context(), middleware.OrganizationID(r.Context()), limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}
