package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
)

func newTestManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	signed, err := m.GenerateAccess(Claims{
		UserID:         "user-1",
		Email:          "mario@example.com",
		OrganizationID: "org-1",
		RoleID:         "role-1",
		Permissions:    []string{"athlete.view", "team.view"},
	})
	require.NoError(t, err)

	claims, err := m.ParseAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, []string{"athlete.view", "team.view"}, claims.Permissions)
	assert.False(t, claims.IsSuperAdmin)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	signed, jti, err := m.GenerateRefresh("user-1", "org-1")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	userID, organizationID, parsedJti, err := m.ParseRefresh(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "org-1", organizationID)
	assert.Equal(t, jti, parsedJti)
}

func TestAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	m := newTestManager()

	signed, _, err := m.GenerateRefresh("user-1", "org-1")
	require.NoError(t, err)

	_, err = m.ParseAccess(signed)
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}

func TestParseAccessWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager(TokenConfig{
		AccessSecret:  "different",
		RefreshSecret: "different-too",
	})

	signed, err := m.GenerateAccess(Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = other.ParseAccess(signed)
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}

func TestParseAccessExpired(t *testing.T) {
	m := NewTokenManager(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
	})

	signed, err := m.GenerateAccess(Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = m.ParseAccess(signed)
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}

func TestParseAccessGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}
