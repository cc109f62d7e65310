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

type PaymentHandler struct {
	payments *service.PaymentService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPaymentHandler(payments *service.PaymentService, validate *validator.Validate, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		validate: validate,
		logger:   log,
	}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.PaymentFilter{
		AthleteID: query.Get("athleteId"),
		Status:    query.Get("status"),
		Overdue:   query.Get("overdue") == "true",
	}
	payments, err := h.payments.List(r.Context(), middleware.OrganizationID(r.Context()), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.Get(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreatePayment
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	payment, err := h.payments.Create(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdatePayment
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	payment, err := h.payments.Update(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var body dto.RecordPayment
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	payment, err := h.payments.Record(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.payments.Delete(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *PaymentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payments.Summary(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *PaymentHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.payments.ListTypes(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}
