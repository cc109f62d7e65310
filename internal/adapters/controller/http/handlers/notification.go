package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/adapters/controller/http/ws"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type NotificationHandler struct {
	notifications *service.NotificationService
	sweep         *service.SweepService
	hub           *ws.Hub
	validate      *validator.Validate
	logger        *logger.Logger
}

func NewNotificationHandler(
	notifications *service.NotificationService,
	sweep *service.SweepService,
	hub *ws.Hub,
	validate *validator.Validate,
	log *logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		sweep:         sweep,
		hub:           hub,
		validate:      validate,
		logger:        log,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.NotificationFilter{
		Type:     query.Get("type"),
		Severity: query.Get("severity"),
	}
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	if query.Get("unread") != "" {
		unread := query.Get("unread") == "true"
		filter.Unread = &unread
	}

	claims := middleware.Claims(r.Context())
	notifications, unreadCount, err := h.notifications.List(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID, filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateNotification
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	notification, err := h.notifications.Create(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	err := h.notifications.MarkRead(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	err := h.notifications.MarkAllRead(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	err := h.notifications.Delete(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	err := h.notifications.ClearAll(r.Context(), middleware.OrganizationID(r.Context()), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// TriggerSweep runs the notification sweep for the caller's organization on
// demand.
func (h *NotificationHandler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	err := h.sweep.RunOrganization(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "completed"})
}

// WebSocket upgrades the connection and subscribes it to the caller's rooms.
func (h *NotificationHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	if err := h.hub.Serve(w, r, claims.UserID, middleware.OrganizationID(r.Context())); err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
	}
}
