package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps a service error to the HTTP status and the error
// envelope. Unknown errors surface as 500 without leaking internals.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, fe.Field()+" failed on "+fe.Tag())
		}
		err = errorz.Validation("request validation failed", details)
	}

	var appErr *errorz.Error
	if !errors.As(err, &appErr) {
		log.Errorf("internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorEnvelope{
			Error: errorBody{Code: "INTERNAL_ERROR", Message: "internal server error"},
		})
		return
	}

	respondJSON(w, statusOf(appErr.Kind), errorEnvelope{
		Error: errorBody{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details},
	})
}

func statusOf(kind errorz.Kind) int {
	switch kind {
	case errorz.KindNotFound:
		return http.StatusNotFound
	case errorz.KindBadRequest, errorz.KindValidation:
		return http.StatusBadRequest
	case errorz.KindConflict:
		return http.StatusConflict
	case errorz.KindForbidden:
		return http.StatusForbidden
	case errorz.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decode parses the JSON body into dst and validates it.
func decode(r *http.Request, validate *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errorz.BadRequest("INVALID_BODY", "request body is not valid JSON")
	}
	return validate.Struct(dst)
}
