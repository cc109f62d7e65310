package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/pkg/logger"
)

const invitationTTL = 7 * 24 * time.Hour

type organizationStorage interface {
	Get(ctx context.Context, id string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) (*entity.Organization, error)
}

type memberStorage interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]entity.UserOrganization, error)
	GetByUserAndOrg(ctx context.Context, userID, organizationID string) (*entity.UserOrganization, error)
	UpdateRole(ctx context.Context, membershipID, roleID string) error
	Delete(ctx context.Context, membershipID string) error
	SwapRoles(ctx context.Context, fromMembershipID, fromRoleID, toMembershipID, toRoleID string) error
}

type roleStorage interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]entity.Role, error)
	Get(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, organizationID, name string) (*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) (*entity.Role, error)
	Delete(ctx context.Context, id string) error
	MembershipCount(ctx context.Context, roleID string) (int64, error)
}

type invitationStorage interface {
	Create(ctx context.Context, invitation *entity.OrganizationInvitation) (*entity.OrganizationInvitation, error)
	HasPending(ctx context.Context, organizationID, email string, now time.Time) (bool, error)
}

type invitationMailer interface {
	SendInvitationEmail(to, organizationName, token string)
}

type logoStore interface {
	SaveLogo(organizationID, fileName string, file io.Reader) (string, error)
}

type OrganizationService struct {
	orgs        organizationStorage
	members     memberStorage
	roles       roleStorage
	invitations invitationStorage
	mailer      invitationMailer
	logos       logoStore
	clock       clockwork.Clock
	logger      *logger.Logger
}

func NewOrganizationService(
	orgs organizationStorage,
	members memberStorage,
	roles roleStorage,
	invitations invitationStorage,
	mailer invitationMailer,
	logos logoStore,
	clock clockwork.Clock,
	log *logger.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgs:        orgs,
		members:     members,
		roles:       roles,
		invitations: invitations,
		mailer:      mailer,
		logos:       logos,
		clock:       clock,
		logger:      log,
	}
}

func (s *OrganizationService) Get(ctx context.Context, id string) (*entity.Organization, error) {
	org, err := s.orgs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ORGANIZATION_NOT_FOUND", "organization not found")
		}
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, id string, data dto.UpdateOrganization) (*entity.Organization, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if data.Name != "" {
		org.Name = data.Name
	}
	if data.Address != "" {
		org.Address = data.Address
	}
	if data.Phone != "" {
		org.Phone = data.Phone
	}
	if data.BillingEmail != "" {
		org.BillingEmail = data.BillingEmail
	}
	return s.orgs.Update(ctx, org)
}

// UploadLogo stores the organization logo and records its path.
func (s *OrganizationService) UploadLogo(ctx context.Context, id, fileName string, file io.Reader) (*entity.Organization, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	path, err := s.logos.SaveLogo(id, fileName, file)
	if err != nil {
		return nil, err
	}
	org.LogoPath = path
	return s.orgs.Update(ctx, org)
}

func (s *OrganizationService) ListMembers(ctx context.Context, organizationID string) ([]dto.Member, error) {
	memberships, err := s.members.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	members := make([]dto.Member, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, dto.Member{
			UserID:    m.UserID,
			Email:     m.User.Email,
			FirstName: m.User.FirstName,
			LastName:  m.User.LastName,
			RoleID:    m.RoleID,
			RoleName:  m.Role.Name,
			IsDefault: m.IsDefault,
		})
	}
	return members, nil
}

// InviteUser creates a single-use invitation and emails the token. The role
// must belong to the inviting organization.
func (s *OrganizationService) InviteUser(ctx context.Context, organizationID, invitedByID string, data dto.InviteUser) (*entity.OrganizationInvitation, error) {
	role, err := s.roles.Get(ctx, data.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ROLE_NOT_FOUND", "role not found")
		}
		return nil, err
	}
	if role.OrganizationID != organizationID {
		return nil, errorz.ErrNotMember
	}
	if role.Name == "Owner" {
		return nil, errorz.Forbidden("CANNOT_INVITE_OWNER", "cannot invite a user as owner")
	}

	now := s.clock.Now()
	pending, err := s.invitations.HasPending(ctx, organizationID, data.Email, now)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errorz.Conflict("INVITATION_PENDING", "a pending invitation already exists for this email")
	}

	org, err := s.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	invitation, err := s.invitations.Create(ctx, &entity.OrganizationInvitation{
		OrganizationID: organizationID,
		Email:          data.Email,
		RoleID:         data.RoleID,
		Token:          uuid.New().String(),
		InvitedByID:    invitedByID,
		ExpiresAt:      now.Add(invitationTTL),
	})
	if err != nil {
		return nil, err
	}

	s.mailer.SendInvitationEmail(data.Email, org.Name, invitation.Token)
	s.logger.Infof("user %s invited to organization %s with role %s", data.Email, org.Name, role.Name)

	return invitation, nil
}

func (s *OrganizationService) ChangeMemberRole(ctx context.Context, organizationID, userID string, data dto.ChangeMemberRole) error {
	membership, err := s.members.GetByUserAndOrg(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.NotFound("MEMBER_NOT_FOUND", "user is not a member of this organization")
		}
		return err
	}
	if membership.Role.Name == "Owner" {
		return errorz.Forbidden("CANNOT_CHANGE_OWNER", "use ownership transfer to change the owner")
	}

	role, err := s.roles.Get(ctx, data.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.NotFound("ROLE_NOT_FOUND", "role not found")
		}
		return err
	}
	if role.OrganizationID != organizationID || role.Name == "Owner" {
		return errorz.BadRequest("INVALID_ROLE", "role cannot be assigned")
	}

	return s.members.UpdateRole(ctx, membership.ID, data.RoleID)
}

// RemoveMember removes a user from an organization. Self-removal and removal
// of the owner are rejected.
func (s *OrganizationService) RemoveMember(ctx context.Context, organizationID, userID, removedByID string) error {
	if userID == removedByID {
		return errorz.Forbidden("CANNOT_REMOVE_SELF", "cannot remove yourself from organization")
	}

	membership, err := s.members.GetByUserAndOrg(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.NotFound("MEMBER_NOT_FOUND", "user is not a member of this organization")
		}
		return err
	}
	if membership.Role.Name == "Owner" {
		return errorz.Forbidden("CANNOT_REMOVE_OWNER", "cannot remove organization owner")
	}

	if err = s.members.Delete(ctx, membership.ID); err != nil {
		return err
	}

	s.logger.Infof("user %s removed from organization %s", userID, organizationID)
	return nil
}

// TransferOwnership swaps the Owner role between the current owner and the
// new owner atomically; the previous owner becomes an Admin.
func (s *OrganizationService) TransferOwnership(ctx context.Context, organizationID, currentOwnerID string, data dto.TransferOwnership) error {
	current, err := s.members.GetByUserAndOrg(ctx, currentOwnerID, organizationID)
	if err != nil {
		return errorz.Forbidden("NOT_OWNER", "only the owner can transfer ownership")
	}
	if current.Role.Name != "Owner" {
		return errorz.Forbidden("NOT_OWNER", "only the owner can transfer ownership")
	}

	next, err := s.members.GetByUserAndOrg(ctx, data.NewOwnerID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.NotFound("MEMBER_NOT_FOUND", "new owner is not a member of this organization")
		}
		return err
	}

	ownerRole, err := s.roles.GetByName(ctx, organizationID, "Owner")
	if err != nil {
		return err
	}
	adminRole, err := s.roles.GetByName(ctx, organizationID, "Admin")
	if err != nil {
		return err
	}

	if err = s.members.SwapRoles(ctx, current.ID, adminRole.ID, next.ID, ownerRole.ID); err != nil {
		return err
	}

	s.logger.Infof("ownership of organization %s transferred from %s to %s", organizationID, currentOwnerID, data.NewOwnerID)
	return nil
}

func (s *OrganizationService) ListRoles(ctx context.Context, organizationID string) ([]entity.Role, error) {
	return s.roles.ListByOrganization(ctx, organizationID)
}

func (s *OrganizationService) CreateRole(ctx context.Context, organizationID string, data dto.CreateRole) (*entity.Role, error) {
	if _, err := s.roles.GetByName(ctx, organizationID, data.Name); err == nil {
		return nil, errorz.Conflict("ROLE_EXISTS", "a role with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.roles.Create(ctx, &entity.Role{
		OrganizationID: organizationID,
		Name:           data.Name,
		Description:    data.Description,
		Permissions:    data.Permissions,
	})
}

func (s *OrganizationService) UpdateRole(ctx context.Context, organizationID, roleID string, data dto.UpdateRole) (*entity.Role, error) {
	role, err := s.roleInOrganization(ctx, organizationID, roleID)
	if err != nil {
		return nil, err
	}
	if role.IsSystem {
		return nil, errorz.Forbidden("SYSTEM_ROLE", "system roles cannot be edited")
	}
	if data.Name != "" {
		role.Name = data.Name
	}
	if data.Description != "" {
		role.Description = data.Description
	}
	if data.Permissions != nil {
		role.Permissions = data.Permissions
	}
	return s.roles.Update(ctx, role)
}

// DeleteRole removes a custom role. System roles and roles still held by
// members cannot be deleted.
func (s *OrganizationService) DeleteRole(ctx context.Context, organizationID, roleID string) error {
	role, err := s.roleInOrganization(ctx, organizationID, roleID)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return errorz.Forbidden("SYSTEM_ROLE", "system roles cannot be deleted")
	}
	count, err := s.roles.MembershipCount(ctx, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errorz.Conflict("ROLE_IN_USE", "role is assigned to members")
	}
	return s.roles.Delete(ctx, roleID)
}

func (s *OrganizationService) roleInOrganization(ctx context.Context, organizationID, roleID string) (*entity.Role, error) {
	role, err := s.roles.Get(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ROLE_NOT_FOUND", "role not found")
		}
		return nil, err
	}
	if role.OrganizationID != organizationID {
		return nil, errorz.NotFound("ROLE_NOT_FOUND", "role not found")
	}
	return role, nil
}
