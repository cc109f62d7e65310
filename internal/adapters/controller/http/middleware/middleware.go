package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/241luca/soccer-manager/internal/domain/permissions"
	"github.com/241luca/soccer-manager/pkg/logger"
	"github.com/241luca/soccer-manager/pkg/token"
)

type contextKey int

const (
	claimsKey contextKey = iota
	organizationKey
)

type accessParser interface {
	ParseAccess(tokenString string) (*token.Claims, error)
}

type Middleware struct {
	tokens accessParser
	logger *logger.Logger
}

func New(tokens accessParser, log *logger.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		logger: log,
	}
}

// Authenticate validates the bearer token and resolves the tenant. Regular
// users carry their organization in the token; super admins pick one per
// request through the X-Organization-ID header.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			unauthorized(w, "MISSING_TOKEN", "authentication required")
			return
		}

		claims, err := m.tokens.ParseAccess(raw)
		if err != nil {
			unauthorized(w, "INVALID_TOKEN", "invalid or expired token")
			return
		}

		organizationID := claims.OrganizationID
		if claims.IsSuperAdmin {
			if header := r.Header.Get("X-Organization-ID"); header != "" {
				organizationID = header
			}
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = context.WithValue(ctx, organizationKey, organizationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOrganization rejects requests that resolved no tenant, which can
// only happen for super admins omitting the X-Organization-ID header.
func RequireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if OrganizationID(r.Context()) == "" {
			writeError(w, http.StatusBadRequest, "ORGANIZATION_REQUIRED", "X-Organization-ID header required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission gates a route on one permission from the token.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r.Context())
			if claims == nil || !permissions.Has(claims.Permissions, permission) {
				writeError(w, http.StatusForbidden, "PERMISSION_DENIED", "missing permission: "+permission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Claims returns the token claims stored by Authenticate, or nil.
func Claims(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey).(*token.Claims)
	return claims
}

// OrganizationID returns the tenant resolved by Authenticate.
func OrganizationID(ctx context.Context) string {
	organizationID, _ := ctx.Value(organizationKey).(string)
	return organizationID
}

// bearerToken extracts the access token from the Authorization header, or
// from the token query parameter for websocket connections.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter, code, message string) {
	writeError(w, http.StatusUnauthorized, code, message)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}
