package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/pkg/logger"
	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/internal/domain/permissions"
	"github.com/241luca/soccer-manager/pkg/token"
)

const (
	maxLoginAttempts = 5
	lockDuration     = 30 * time.Minute
	trialDuration    = 30 * 24 * time.Hour
	bcryptCost       = 10
)

type authUserStorage interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	CreateWithMembership(ctx context.Context, user *entity.User, membership *entity.UserOrganization) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

type authMembershipStorage interface {
	GetByUser(ctx context.Context, userID string) ([]entity.UserOrganization, error)
	GetByUserAndOrg(ctx context.Context, userID, organizationID string) (*entity.UserOrganization, error)
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)
	SetDefault(ctx context.Context, userID, organizationID string) error
}

// OrganizationBootstrap is everything provisioned transactionally when a new
// organization is registered.
type OrganizationBootstrap struct {
	Organization  *entity.Organization
	Roles         []entity.Role
	DocumentTypes []entity.DocumentType
	PaymentTypes  []entity.PaymentType
	Owner         *entity.User
}

type authOrganizationStorage interface {
	Get(ctx context.Context, id string) (*entity.Organization, error)
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
	Provision(ctx context.Context, bootstrap *OrganizationBootstrap) error
}

type authRoleStorage interface {
	GetByName(ctx context.Context, organizationID, name string) (*entity.Role, error)
}

type authInvitationStorage interface {
	GetByToken(ctx context.Context, token string) (*entity.OrganizationInvitation, error)
	MarkAccepted(ctx context.Context, id string, at time.Time) error
}

// Session is the server-side state of a refresh token, keyed by jti.
type Session struct {
	UserID         string
	OrganizationID string
}

type sessionStorage interface {
	Set(ctx context.Context, jti string, session Session, ttl time.Duration) error
	Get(ctx context.Context, jti string) (*Session, error)
	Delete(ctx context.Context, jti string) error
}

type tokenManager interface {
	GenerateAccess(claims token.Claims) (string, error)
	GenerateRefresh(userID, organizationID string) (string, string, error)
	ParseRefresh(tokenString string) (userID, organizationID, jti string, err error)
	RefreshTTL() time.Duration
}

type AuthService struct {
	users       authUserStorage
	memberships authMembershipStorage
	orgs        authOrganizationStorage
	roles       authRoleStorage
	invitations authInvitationStorage
	sessions    sessionStorage
	tokens      tokenManager
	clock       clockwork.Clock
	logger      *logger.Logger
}

func NewAuthService(
	users authUserStorage,
	memberships authMembershipStorage,
	orgs authOrganizationStorage,
	roles authRoleStorage,
	invitations authInvitationStorage,
	sessions sessionStorage,
	tokens tokenManager,
	clock clockwork.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		memberships: memberships,
		orgs:        orgs,
		roles:       roles,
		invitations: invitations,
		sessions:    sessions,
		tokens:      tokens,
		clock:       clock,
		logger:      log,
	}
}

// Login verifies credentials, resolves the organization context and issues a
// token pair. A locked account is rejected before the password is checked,
// so lockout holds regardless of password correctness.
func (s *AuthService) Login(ctx context.Context, data dto.Login) (*dto.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(data.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.clock.Now()
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, errorz.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)) != nil {
		s.handleFailedLogin(ctx, user)
		return nil, errorz.ErrInvalidCredentials
	}

	memberships, err := s.memberships.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	membership, selection, err := resolveMembership(memberships, data.OrganizationID)
	if err != nil {
		return nil, err
	}
	if selection != nil {
		return &dto.AuthResult{
			RequiresOrganizationSelection: true,
			Organizations:                 selection,
		}, nil
	}

	if !membership.Organization.IsActive {
		return nil, errorz.ErrOrgInactive
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLogin = &now
	if _, err = s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user, membership)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("user %s logged in to organization %s", user.Email, membership.Organization.Name)

	return &dto.AuthResult{
		User: &dto.AuthUser{
			ID:          user.ID,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Role:        membership.Role.Name,
			Permissions: membership.Role.Permissions,
		},
		Organization: &dto.AuthOrganization{
			ID:        membership.Organization.ID,
			Name:      membership.Organization.Name,
			Subdomain: membership.Organization.Subdomain,
			Plan:      membership.Organization.Plan,
		},
		TokenPair: *pair,
	}, nil
}

// resolveMembership picks the organization context for a login: an explicit
// request wins, then a sole membership, then the default membership. With
// several memberships and no default, the caller gets a selection prompt.
func resolveMembership(memberships []entity.UserOrganization, organizationID string) (*entity.UserOrganization, []dto.MembershipSummary, error) {
	if organizationID != "" {
		for i := range memberships {
			if memberships[i].OrganizationID == organizationID {
				return &memberships[i], nil, nil
			}
		}
		return nil, nil, errorz.ErrNotMember
	}

	switch len(memberships) {
	case 0:
		return nil, nil, errorz.ErrNoOrganization
	case 1:
		return &memberships[0], nil, nil
	}

	for i := range memberships {
		if memberships[i].IsDefault {
			return &memberships[i], nil, nil
		}
	}

	selection := make([]dto.MembershipSummary, 0, len(memberships))
	for _, m := range memberships {
		selection = append(selection, dto.MembershipSummary{
			ID:        m.Organization.ID,
			Name:      m.Organization.Name,
			Subdomain: m.Organization.Subdomain,
			Role:      m.Role.Name,
		})
	}
	return nil, selection, nil
}

func (s *AuthService) handleFailedLogin(ctx context.Context, user *entity.User) {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= maxLoginAttempts {
		lockedUntil := s.clock.Now().Add(lockDuration)
		user.LockedUntil = &lockedUntil
		s.logger.Warnf("account locked for %s after %d failed attempts", user.Email, user.FailedLoginAttempts)
	}
	if _, err := s.users.Update(ctx, user); err != nil {
		s.logger.Errorf("failed to record failed login for %s: %v", user.Email, err)
	}
}

// Register creates an account through one of three branches: redeeming an
// invitation, bootstrapping a new organization, or joining an existing one.
func (s *AuthService) Register(ctx context.Context, data dto.Register) (*dto.AuthResult, error) {
	data.Email = strings.ToLower(data.Email)

	if _, err := s.users.GetByEmail(ctx, data.Email); err == nil {
		return nil, errorz.Conflict("EMAIL_TAKEN", "user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if data.InvitationToken != "" {
		return s.registerWithInvitation(ctx, data)
	}
	if data.OrganizationName != "" {
		return s.registerWithNewOrganization(ctx, data)
	}
	if data.OrganizationID == "" {
		return nil, errorz.BadRequest("ORGANIZATION_REQUIRED", "organization id or name required")
	}
	return s.registerJoinOrganization(ctx, data)
}

func (s *AuthService) registerJoinOrganization(ctx context.Context, data dto.Register) (*dto.AuthResult, error) {
	org, err := s.orgs.Get(ctx, data.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.BadRequest("INVALID_ORGANIZATION", "invalid organization id")
		}
		return nil, err
	}

	count, err := s.memberships.CountByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(org.MaxUsers) {
		return nil, errorz.Forbidden("USER_LIMIT_REACHED", "organization has reached its user limit")
	}

	role, err := s.roles.GetByName(ctx, org.ID, "Staff")
	if err != nil {
		return nil, err
	}

	user, err := s.newUser(data)
	if err != nil {
		return nil, err
	}
	user, err = s.users.CreateWithMembership(ctx, user, &entity.UserOrganization{
		OrganizationID: org.ID,
		RoleID:         role.ID,
		IsDefault:      true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("new user registered: %s for organization %s", user.Email, org.Name)

	return s.registrationResult(ctx, user, org, role)
}

func (s *AuthService) registerWithNewOrganization(ctx context.Context, data dto.Register) (*dto.AuthResult, error) {
	subdomain, err := s.uniqueSubdomain(ctx, data.OrganizationName)
	if err != nil {
		return nil, err
	}

	user, err := s.newUser(data)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	trialEnds := now.Add(trialDuration)
	bootstrap := &OrganizationBootstrap{
		Organization: &entity.Organization{
			Name:         data.OrganizationName,
			Code:         strings.ToUpper(subdomain),
			Subdomain:    subdomain,
			Plan:         "trial",
			IsTrial:      true,
			TrialEndsAt:  &trialEnds,
			IsActive:     true,
			MaxUsers:     10,
			MaxAthletes:  200,
			BillingEmail: data.Email,
		},
		Roles:         defaultRoles(),
		DocumentTypes: defaultDocumentTypes(),
		PaymentTypes:  defaultPaymentTypes(),
		Owner:         user,
	}

	if err = s.orgs.Provision(ctx, bootstrap); err != nil {
		return nil, err
	}

	var ownerRole *entity.Role
	for i := range bootstrap.Roles {
		if bootstrap.Roles[i].Name == "Owner" {
			ownerRole = &bootstrap.Roles[i]
		}
	}

	s.logger.Infof("new organization created: %s with owner %s", bootstrap.Organization.Name, user.Email)

	return s.registrationResult(ctx, bootstrap.Owner, bootstrap.Organization, ownerRole)
}

func (s *AuthService) registerWithInvitation(ctx context.Context, data dto.Register) (*dto.AuthResult, error) {
	invitation, err := s.invitations.GetByToken(ctx, data.InvitationToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.BadRequest("INVALID_INVITATION", "invalid or expired invitation")
		}
		return nil, err
	}

	now := s.clock.Now()
	if invitation.ExpiresAt.Before(now) {
		return nil, errorz.BadRequest("INVALID_INVITATION", "invalid or expired invitation")
	}
	if invitation.AcceptedAt != nil {
		return nil, errorz.BadRequest("INVITATION_USED", "invitation already used")
	}
	if !strings.EqualFold(invitation.Email, data.Email) {
		return nil, errorz.BadRequest("EMAIL_MISMATCH", "email does not match invitation")
	}
	if !invitation.Organization.IsActive {
		return nil, errorz.ErrOrgInactive
	}

	user, err := s.newUser(data)
	if err != nil {
		return nil, err
	}
	user, err = s.users.CreateWithMembership(ctx, user, &entity.UserOrganization{
		OrganizationID: invitation.OrganizationID,
		RoleID:         invitation.RoleID,
		IsDefault:      true,
	})
	if err != nil {
		return nil, err
	}

	if err = s.invitations.MarkAccepted(ctx, invitation.ID, now); err != nil {
		return nil, err
	}

	s.logger.Infof("user %s joined organization %s via invitation", user.Email, invitation.Organization.Name)

	return s.registrationResult(ctx, user, &invitation.Organization, &invitation.Role)
}

func (s *AuthService) newUser(data dto.Register) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		Email:        data.Email,
		PasswordHash: string(hash),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Phone:        data.Phone,
		IsActive:     true,
	}, nil
}

func (s *AuthService) registrationResult(ctx context.Context, user *entity.User, org *entity.Organization, role *entity.Role) (*dto.AuthResult, error) {
	pair, err := s.issueTokens(ctx, user, &entity.UserOrganization{
		OrganizationID: org.ID,
		RoleID:         role.ID,
		Role:           *role,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{
		User: &dto.AuthUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      role.Name,
		},
		Organization: &dto.AuthOrganization{
			ID:        org.ID,
			Name:      org.Name,
			Subdomain: org.Subdomain,
			Plan:      org.Plan,
		},
		TokenPair: *pair,
	}, nil
}

var subdomainPattern = regexp.MustCompile(`[^a-z0-9]+`)

func (s *AuthService) uniqueSubdomain(ctx context.Context, name string) (string, error) {
	base := strings.Trim(subdomainPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = "club"
	}
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := s.orgs.SubdomainTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
	}
}

// Refresh rotates a refresh token: the presented token must be both validly
// signed and present in the session store, and its membership is re-read so
// revoked access shows up immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	userID, organizationID, jti, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, jti)
	if err != nil || session == nil {
		return nil, errorz.ErrInvalidToken
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, errorz.ErrInvalidToken
	}

	if err = s.sessions.Delete(ctx, jti); err != nil {
		s.logger.Warnf("failed to revoke rotated refresh token: %v", err)
	}

	if user.IsSuperAdmin && organizationID == "" {
		return s.issueSuperAdminTokens(ctx, user)
	}

	membership, err := s.memberships.GetByUserAndOrg(ctx, userID, organizationID)
	if err != nil {
		return nil, errorz.Unauthorized("NO_ACCESS", "user no longer has access to organization")
	}

	return s.issueTokens(ctx, user, membership)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, _, jti, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, jti)
}

// SwitchOrganization re-issues tokens for another organization the user
// belongs to and makes it the default.
func (s *AuthService) SwitchOrganization(ctx context.Context, userID string, data dto.SwitchOrganization) (*dto.AuthResult, error) {
	membership, err := s.memberships.GetByUserAndOrg(ctx, userID, data.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotMember
		}
		return nil, err
	}
	if !membership.Organization.IsActive {
		return nil, errorz.ErrOrgInactive
	}

	if err = s.memberships.SetDefault(ctx, userID, data.OrganizationID); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user, membership)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("user %s switched to organization %s", user.Email, membership.Organization.Name)

	return &dto.AuthResult{
		User: &dto.AuthUser{
			ID:          user.ID,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Role:        membership.Role.Name,
			Permissions: membership.Role.Permissions,
		},
		Organization: &dto.AuthOrganization{
			ID:        membership.Organization.ID,
			Name:      membership.Organization.Name,
			Subdomain: membership.Organization.Subdomain,
			Plan:      membership.Organization.Plan,
		},
		TokenPair: *pair,
	}, nil
}

// UserOrganizations lists the active organizations the user can switch to.
func (s *AuthService) UserOrganizations(ctx context.Context, userID string) ([]dto.MembershipSummary, error) {
	memberships, err := s.memberships.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MembershipSummary, 0, len(memberships))
	for _, m := range memberships {
		if !m.Organization.IsActive {
			continue
		}
		result = append(result, dto.MembershipSummary{
			ID:        m.Organization.ID,
			Name:      m.Organization.Name,
			Subdomain: m.Organization.Subdomain,
			Plan:      m.Organization.Plan,
			Role:      m.Role.Name,
			IsDefault: m.IsDefault,
		})
	}
	return result, nil
}

// LoginSuperAdmin authenticates a super admin. The issued token carries the
// wildcard permission and no organization; tenant context comes from the
// X-Organization-ID header per request.
func (s *AuthService) LoginSuperAdmin(ctx context.Context, data dto.Login) (*dto.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(data.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsSuperAdmin || !user.IsActive {
		return nil, errorz.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)) != nil {
		return nil, errorz.ErrInvalidCredentials
	}

	now := s.clock.Now()
	user.LastLogin = &now
	if _, err = s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueSuperAdminTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("super admin %s logged in", user.Email)

	return &dto.AuthResult{
		User: &dto.AuthUser{
			ID:           user.ID,
			Email:        user.Email,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Role:         "SUPER_ADMIN",
			Permissions:  []string{permissions.All},
			IsSuperAdmin: true,
		},
		TokenPair: *pair,
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User, membership *entity.UserOrganization) (*dto.TokenPair, error) {
	access, err := s.tokens.GenerateAccess(token.Claims{
		UserID:         user.ID,
		Email:          user.Email,
		OrganizationID: membership.OrganizationID,
		RoleID:         membership.RoleID,
		Permissions:    membership.Role.Permissions,
	})
	if err != nil {
		return nil, err
	}

	refresh, jti, err := s.tokens.GenerateRefresh(user.ID, membership.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err = s.sessions.Set(ctx, jti, Session{UserID: user.ID, OrganizationID: membership.OrganizationID}, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) issueSuperAdminTokens(ctx context.Context, user *entity.User) (*dto.TokenPair, error) {
	access, err := s.tokens.GenerateAccess(token.Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Permissions:  []string{permissions.All},
		IsSuperAdmin: true,
	})
	if err != nil {
		return nil, err
	}

	refresh, jti, err := s.tokens.GenerateRefresh(user.ID, "")
	if err != nil {
		return nil, err
	}
	if err = s.sessions.Set(ctx, jti, Session{UserID: user.ID}, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func defaultRoles() []entity.Role {
	roles := make([]entity.Role, 0, len(permissions.DefaultRoles))
	for _, tmpl := range permissions.DefaultRoles {
		roles = append(roles, entity.Role{
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Permissions: tmpl.Permissions,
			IsSystem:    true,
		})
	}
	return roles
}

func defaultDocumentTypes() []entity.DocumentType {
	return []entity.DocumentType{
		{Name: "Certificato Medico", Category: "medical", IsRequired: true, ValidityDays: 365, ReminderDays: []int{30, 15, 7}},
		{Name: "Documento Identità", Category: "identity", IsRequired: true, ValidityDays: 1825, ReminderDays: []int{60, 30}},
		{Name: "Tesserino FIGC", Category: "federation", IsRequired: false, ValidityDays: 365, ReminderDays: []int{30, 15}},
	}
}

func defaultPaymentTypes() []entity.PaymentType {
	return []entity.PaymentType{
		{Name: "Quota Iscrizione", Amount: 150, Frequency: "annual", Category: "membership"},
		{Name: "Quota Mensile", Amount: 50, Frequency: "monthly", Category: "membership"},
		{Name: "Trasporto", Amount: 30, Frequency: "monthly", Category: "transport"},
	}
}
