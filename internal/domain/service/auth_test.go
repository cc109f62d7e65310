package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/pkg/token"
)

type fakeUserStorage struct {
	users map[string]*entity.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[string]*entity.User)}
}

func (f *fakeUserStorage) add(user *entity.User) *entity.User {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStorage) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStorage) Get(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStorage) CreateWithMembership(_ context.Context, user *entity.User, _ *entity.UserOrganization) (*entity.User, error) {
	return f.add(user), nil
}

func (f *fakeUserStorage) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	clone := *user
	f.users[user.ID] = &clone
	return user, nil
}

type fakeMembershipStorage struct {
	memberships []entity.UserOrganization
}

func (f *fakeMembershipStorage) GetByUser(_ context.Context, userID string) ([]entity.UserOrganization, error) {
	var out []entity.UserOrganization
	for _, m := range f.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipStorage) GetByUserAndOrg(_ context.Context, userID, organizationID string) (*entity.UserOrganization, error) {
	for i := range f.memberships {
		if f.memberships[i].UserID == userID && f.memberships[i].OrganizationID == organizationID {
			return &f.memberships[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMembershipStorage) CountByOrganization(_ context.Context, organizationID string) (int64, error) {
	var count int64
	for _, m := range f.memberships {
		if m.OrganizationID == organizationID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMembershipStorage) SetDefault(_ context.Context, userID, organizationID string) error {
	for i := range f.memberships {
		if f.memberships[i].UserID == userID {
			f.memberships[i].IsDefault = f.memberships[i].OrganizationID == organizationID
		}
	}
	return nil
}

type fakeAuthOrgStorage struct {
	orgs map[string]*entity.Organization
}

func (f *fakeAuthOrgStorage) Get(_ context.Context, id string) (*entity.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return org, nil
}

func (f *fakeAuthOrgStorage) SubdomainTaken(_ context.Context, subdomain string) (bool, error) {
	for _, org := range f.orgs {
		if org.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAuthOrgStorage) Provision(_ context.Context, bootstrap *OrganizationBootstrap) error {
	bootstrap.Organization.ID = uuid.New().String()
	for i := range bootstrap.Roles {
		bootstrap.Roles[i].ID = uuid.New().String()
		bootstrap.Roles[i].OrganizationID = bootstrap.Organization.ID
	}
	bootstrap.Owner.ID = uuid.New().String()
	if f.orgs == nil {
		f.orgs = make(map[string]*entity.Organization)
	}
	f.orgs[bootstrap.Organization.ID] = bootstrap.Organization
	return nil
}

type fakeAuthRoleStorage struct {
	roles []entity.Role
}

func (f *fakeAuthRoleStorage) GetByName(_ context.Context, organizationID, name string) (*entity.Role, error) {
	for i := range f.roles {
		if f.roles[i].OrganizationID == organizationID && f.roles[i].Name == name {
			return &f.roles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeInvitationStore struct {
	invitations map[string]*entity.OrganizationInvitation
}

func (f *fakeInvitationStore) GetByToken(_ context.Context, token string) (*entity.OrganizationInvitation, error) {
	inv, ok := f.invitations[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (f *fakeInvitationStore) MarkAccepted(_ context.Context, id string, at time.Time) error {
	for _, inv := range f.invitations {
		if inv.ID == id {
			inv.AcceptedAt = &at
		}
	}
	return nil
}

type fakeSessionStorage struct {
	sessions map[string]Session
}

func newFakeSessionStorage() *fakeSessionStorage {
	return &fakeSessionStorage{sessions: make(map[string]Session)}
}

func (f *fakeSessionStorage) Set(_ context.Context, jti string, session Session, _ time.Duration) error {
	f.sessions[jti] = session
	return nil
}

func (f *fakeSessionStorage) Get(_ context.Context, jti string) (*Session, error) {
	session, ok := f.sessions[jti]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (f *fakeSessionStorage) Delete(_ context.Context, jti string) error {
	delete(f.sessions, jti)
	return nil
}

// fakeTokenManager issues opaque tokens of the form "<userID>|<orgID>|<jti>".
type fakeTokenManager struct{}

func (fakeTokenManager) GenerateAccess(token.Claims) (string, error) { return "access", nil }

func (fakeTokenManager) GenerateRefresh(userID, organizationID string) (string, string, error) {
	jti := uuid.New().String()
	return userID + "|" + organizationID + "|" + jti, jti, nil
}

func (fakeTokenManager) ParseRefresh(tokenString string) (string, string, string, error) {
	parts := strings.SplitN(tokenString, "|", 3)
	if len(parts) != 3 {
		return "", "", "", errorz.ErrInvalidToken
	}
	return parts[0], parts[1], parts[2], nil
}

func (fakeTokenManager) RefreshTTL() time.Duration { return 7 * 24 * time.Hour }

type authFixture struct {
	service     *AuthService
	users       *fakeUserStorage
	memberships *fakeMembershipStorage
	orgs        *fakeAuthOrgStorage
	invitations *fakeInvitationStore
	sessions    *fakeSessionStorage
	clock       clockwork.FakeClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserStorage()
	memberships := &fakeMembershipStorage{}
	orgs := &fakeAuthOrgStorage{orgs: make(map[string]*entity.Organization)}
	roles := &fakeAuthRoleStorage{}
	invitations := &fakeInvitationStore{invitations: make(map[string]*entity.OrganizationInvitation)}
	sessions := newFakeSessionStorage()
	clock := clockwork.NewFakeClockAt(date(2026, time.March, 1))

	return &authFixture{
		service: NewAuthService(users, memberships, orgs, roles, invitations,
			sessions, fakeTokenManager{}, clock, testLogger()),
		users:       users,
		memberships: memberships,
		orgs:        orgs,
		invitations: invitations,
		sessions:    sessions,
		clock:       clock,
	}
}

func (f *authFixture) seedUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return f.users.add(&entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Mario",
		LastName:     "Rossi",
		IsActive:     true,
	})
}

func (f *authFixture) seedMembership(user *entity.User, isDefault bool) *entity.Organization {
	org := &entity.Organization{
		ID:       uuid.New().String(),
		Name:     "AC Test",
		IsActive: true,
	}
	f.orgs.orgs[org.ID] = org
	f.memberships.memberships = append(f.memberships.memberships, entity.UserOrganization{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		OrganizationID: org.ID,
		RoleID:         uuid.New().String(),
		IsDefault:      isDefault,
		Organization:   *org,
		Role:           entity.Role{Name: "Admin", Permissions: []string{"*"}},
	})
	return org
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	org := f.seedMembership(user, true)

	result, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, org.ID, result.Organization.ID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Len(t, f.sessions.sessions, 1)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.Login{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)
}

func TestLoginLockoutAfterFailedAttempts(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	f.seedMembership(user, true)

	for i := 0; i < 5; i++ {
		_, err := f.service.Login(context.Background(), dto.Login{
			Email:    "mario@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)
	}

	// Even the correct password is rejected while the lock holds.
	_, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, errorz.ErrAccountLocked)

	f.clock.Advance(31 * time.Minute)
	result, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotNil(t, result.User)

	stored, err := f.users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.FailedLoginAttempts)
	assert.Nil(t, stored.LockedUntil)
}

func TestLoginRequiresOrganizationSelection(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	f.seedMembership(user, false)
	f.seedMembership(user, false)

	result, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.True(t, result.RequiresOrganizationSelection)
	assert.Len(t, result.Organizations, 2)
	assert.Empty(t, result.AccessToken)
}

func TestLoginPrefersDefaultMembership(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	f.seedMembership(user, false)
	defaultOrg := f.seedMembership(user, true)

	result, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.False(t, result.RequiresOrganizationSelection)
	assert.Equal(t, defaultOrg.ID, result.Organization.ID)
}

func TestLoginInactiveOrganization(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	org := f.seedMembership(user, true)
	org.IsActive = false
	f.memberships.memberships[0].Organization.IsActive = false

	_, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, errorz.ErrOrgInactive)
}

func TestRegisterNewOrganization(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.service.Register(context.Background(), dto.Register{
		Email:            "owner@example.com",
		Password:         "password123",
		FirstName:        "Luca",
		LastName:         "Bianchi",
		OrganizationName: "ASD Sporting Club",
	})

	require.NoError(t, err)
	assert.Equal(t, "Owner", result.User.Role)
	assert.Equal(t, "asd-sporting-club", result.Organization.Subdomain)
	assert.Equal(t, "trial", result.Organization.Plan)
}

func TestRegisterEmailTaken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "mario@example.com", "password123")

	_, err := f.service.Register(context.Background(), dto.Register{
		Email:            "Mario@Example.com",
		Password:         "password123",
		FirstName:        "Mario",
		LastName:         "Rossi",
		OrganizationName: "Another Club",
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindConflict, errorz.KindOf(err))
}

func TestRegisterWithoutOrganization(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), dto.Register{
		Email:     "mario@example.com",
		Password:  "password123",
		FirstName: "Mario",
		LastName:  "Rossi",
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindBadRequest, errorz.KindOf(err))
}

func (f *authFixture) seedInvitation(email string, active bool) *entity.OrganizationInvitation {
	org := &entity.Organization{
		ID:       uuid.New().String(),
		Name:     "AC Test",
		IsActive: active,
	}
	f.orgs.orgs[org.ID] = org
	invitation := &entity.OrganizationInvitation{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          email,
		RoleID:         uuid.New().String(),
		Token:          uuid.New().String(),
		ExpiresAt:      f.clock.Now().Add(7 * 24 * time.Hour),
		Organization:   *org,
		Role:           entity.Role{Name: "Staff", Permissions: []string{"athlete.view"}},
	}
	f.invitations.invitations[invitation.Token] = invitation
	return invitation
}

func TestRegisterWithInvitation(t *testing.T) {
	f := newAuthFixture(t)
	invitation := f.seedInvitation("giulia@example.com", true)

	result, err := f.service.Register(context.Background(), dto.Register{
		Email:           "giulia@example.com",
		Password:        "password123",
		FirstName:       "Giulia",
		LastName:        "Verdi",
		InvitationToken: invitation.Token,
	})

	require.NoError(t, err)
	assert.Equal(t, "Staff", result.User.Role)
	assert.NotNil(t, f.invitations.invitations[invitation.Token].AcceptedAt)
}

func TestRegisterWithInvitationInactiveOrganization(t *testing.T) {
	f := newAuthFixture(t)
	invitation := f.seedInvitation("giulia@example.com", false)

	_, err := f.service.Register(context.Background(), dto.Register{
		Email:           "giulia@example.com",
		Password:        "password123",
		FirstName:       "Giulia",
		LastName:        "Verdi",
		InvitationToken: invitation.Token,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errorz.ErrOrgInactive)
	assert.Nil(t, f.invitations.invitations[invitation.Token].AcceptedAt)
	_, err = f.users.GetByEmail(context.Background(), "giulia@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshRotatesSession(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	f.seedMembership(user, true)

	result, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	pair, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, result.RefreshToken, pair.RefreshToken)

	// The rotated token is revoked and cannot be replayed.
	_, err = f.service.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "mario@example.com", "password123")
	f.seedMembership(user, true)

	result, err := f.service.Login(context.Background(), dto.Login{
		Email:    "mario@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), result.RefreshToken))
	assert.Empty(t, f.sessions.sessions)
}
