package dto

type UpdateOrganization struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	BillingEmail string `json:"billingEmail" validate:"omitempty,email"`
}

type InviteUser struct {
	Email  string `json:"email" validate:"required,email"`
	RoleID string `json:"roleId" validate:"required,uuid"`
}

type ChangeMemberRole struct {
	RoleID string `json:"roleId" validate:"required,uuid"`
}

type TransferOwnership struct {
	NewOwnerID string `json:"newOwnerId" validate:"required,uuid"`
}

type CreateRole struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" validate:"required,min=1"`
}

type UpdateRole struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// Member is one user's membership in an organization.
type Member struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleID    string `json:"roleId"`
	RoleName  string `json:"roleName"`
	IsDefault bool   `json:"isDefault"`
}
