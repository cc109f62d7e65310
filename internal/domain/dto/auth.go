package dto

type Login struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	OrganizationID string `json:"organizationId" validate:"omitempty,uuid"`
}

type Register struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FirstName        string `json:"firstName" validate:"required"`
	LastName         string `json:"lastName" validate:"required"`
	Phone            string `json:"phone"`
	OrganizationName string `json:"organizationName"`
	OrganizationID   string `json:"organizationId" validate:"omitempty,uuid"`
	InvitationToken  string `json:"invitationToken"`
}

type RefreshToken struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SwitchOrganization struct {
	OrganizationID string `json:"organizationId" validate:"required,uuid"`
}

// AuthUser is the user block of a login/register response.
type AuthUser struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions,omitempty"`
	IsSuperAdmin bool     `json:"isSuperAdmin,omitempty"`
}

type AuthOrganization struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Plan      string `json:"plan,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is returned on successful login, registration or refresh. When
// the user belongs to several organizations and none is the default,
// RequiresOrganizationSelection is set and Organizations lists the choices.
type AuthResult struct {
	User         *AuthUser         `json:"user,omitempty"`
	Organization *AuthOrganization `json:"organization,omitempty"`
	TokenPair

	RequiresOrganizationSelection bool                 `json:"requiresOrganizationSelection,omitempty"`
	Organizations                 []MembershipSummary  `json:"organizations,omitempty"`
}

// MembershipSummary is one selectable organization in the selection prompt
// and in the user-organizations listing.
type MembershipSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Plan      string `json:"plan,omitempty"`
	Role      string `json:"role"`
	IsDefault bool   `json:"isDefault,omitempty"`
}
