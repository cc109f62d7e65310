package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
)

// Claims are the access-token claims. OrganizationID is empty for super
// admins, who select a tenant per request instead.
type Claims struct {
	UserID         string   `json:"userId"`
	Email          string   `json:"email"`
	OrganizationID string   `json:"organizationId,omitempty"`
	RoleID         string   `json:"roleId,omitempty"`
	Permissions    []string `json:"permissions"`
	IsSuperAdmin   bool     `json:"isSuperAdmin,omitempty"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates the access/refresh token pair using
// HMAC-SHA256. Access and refresh tokens use separate secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	accessTTL := cfg.AccessTTL
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GenerateAccess signs an access token carrying the full authorization
// context of the session.
func (m *TokenManager) GenerateAccess(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(m.accessSecret)
}

// GenerateRefresh signs a refresh token and returns it with its jti, which
// callers persist to allow revocation.
func (m *TokenManager) GenerateRefresh(userID, organizationID string) (token string, jti string, err error) {
	now := time.Now()
	jti = uuid.New().String()
	claims := &refreshClaims{
		UserID:         userID,
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	return token, jti, err
}

// ParseAccess validates an access token and returns its claims.
func (m *TokenManager) ParseAccess(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errorz.ErrInvalidToken
		}
		return m.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errorz.ErrInvalidToken
	}
	return claims, nil
}

// ParseRefresh validates a refresh token and returns the user, organization
// and jti it carries.
func (m *TokenManager) ParseRefresh(tokenString string) (userID, organizationID, jti string, err error) {
	claims := &refreshClaims{}
	token, parseErr := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errorz.ErrInvalidToken
		}
		return m.refreshSecret, nil
	})
	if parseErr != nil || !token.Valid {
		return "", "", "", errorz.ErrInvalidToken
	}
	return claims.UserID, claims.OrganizationID, claims.ID, nil
}
