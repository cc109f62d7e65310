package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type DocumentHandler struct {
	documents *service.DocumentService
	validate  *validator.Validate
	logger    *logger.Logger
}

func NewDocumentHandler(documents *service.DocumentService, validate *validator.Validate, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		validate:  validate,
		logger:    log,
	}
}

// Upload reads the multipart form: metadata fields next to the file part.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	issueDate, err := parseDate(r.FormValue("issueDate"))
	if err != nil {
		respondError(w, h.logger, errorz.BadRequest("INVALID_DATE", "issueDate must be an ISO date"))
		return
	}
	expiryDate, err := parseDate(r.FormValue("expiryDate"))
	if err != nil {
		respondError(w, h.logger, errorz.BadRequest("INVALID_DATE", "expiryDate must be an ISO date"))
		return
	}

	body := dto.UploadDocument{
		AthleteID:      r.FormValue("athleteId"),
		DocumentTypeID: r.FormValue("documentTypeId"),
		IssueDate:      issueDate,
		ExpiryDate:     expiryDate,
	}
	if err = h.validate.Struct(body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, h.logger, errorz.BadRequest("MISSING_FILE", "file part is required"))
		return
	}
	defer file.Close()

	document, err := h.documents.Upload(r.Context(), middleware.OrganizationID(r.Context()), body, header.Filename, file)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, document)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.DocumentFilter{
		AthleteID: query.Get("athleteId"),
		Status:    query.Get("status"),
		Expiring:  query.Get("expiring") == "true",
	}
	documents, err := h.documents.List(r.Context(), middleware.OrganizationID(r.Context()), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, documents)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	document, err := h.documents.Get(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, document)
}

// Download streams the stored file with its original name and MIME type.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	document, file, err := h.documents.Download(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", document.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+document.FileName+`"`)
	if _, err = io.Copy(w, file); err != nil {
		h.logger.Errorf("failed to stream document %s: %v", document.ID, err)
	}
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.documents.Delete(r.Context(), middleware.OrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *DocumentHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.documents.ListTypes(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (h *DocumentHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateDocumentType
	if err := decode(r, h.validate, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	documentType, err := h.documents.CreateType(r.Context(), middleware.OrganizationID(r.Context()), body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, documentType)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
