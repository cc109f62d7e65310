package middleware

import (
	"context"
	"net/http"
	"strings"
)

type auditRecorder interface {
	Record(ctx context.Context, organizationID, userID, action, entityType, entityID, details string)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Audit appends an audit row after every successful mutating request. It
// runs inside Authenticate so the actor and tenant come from the context.
func Audit(audits auditRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status >= 300 {
				return
			}
			claims := Claims(r.Context())
			if claims == nil {
				return
			}

			entityType, entityID := splitResource(r.URL.Path)
			audits.Record(r.Context(), OrganizationID(r.Context()), claims.UserID,
				r.Method, entityType, entityID, r.URL.Path)
		})
	}
}

// splitResource derives the resource name and id from an /api/v1 path.
func splitResource(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/api/v1/")
	parts := strings.Split(trimmed, "/")
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[1]
	}
}
