package permissions

// Permission strings checked by the route guards. The wildcard grants
// everything and is reserved for the Owner/Admin roles and super admins.
const (
	All = "*"

	AthleteView   = "athlete.view"
	AthleteCreate = "athlete.create"
	AthleteUpdate = "athlete.update"
	AthleteDelete = "athlete.delete"

	TeamView         = "team.view"
	TeamCreate       = "team.create"
	TeamUpdate       = "team.update"
	TeamDelete       = "team.delete"
	TeamManageRoster = "team.manage_roster"

	MatchView          = "match.view"
	MatchCreate        = "match.create"
	MatchUpdate        = "match.update"
	MatchDelete        = "match.delete"
	MatchManageRoster  = "match.manage_roster"
	MatchUpdateResults = "match.update_results"

	DocumentView   = "document.view"
	DocumentUpload = "document.upload"
	DocumentDelete = "document.delete"

	PaymentView   = "payment.view"
	PaymentCreate = "payment.create"
	PaymentUpdate = "payment.update"
	PaymentRecord = "payment.record"
	PaymentDelete = "payment.delete"

	TransportView   = "transport.view"
	TransportManage = "transport.manage"

	NotificationSend   = "notification.send"
	NotificationManage = "notification.manage"

	OrgSettingsView   = "org.settings.view"
	OrgSettingsUpdate = "org.settings.update"

	UserView   = "user.view"
	UserUpdate = "user.update"
	UserDelete = "user.delete"
	UserInvite = "user.invite"

	RoleView   = "role.view"
	RoleCreate = "role.create"
	RoleUpdate = "role.update"
	RoleDelete = "role.delete"

	AuditView = "audit.view"

	ReportView = "report.view"
)

// Has reports whether the permission list grants perm, honoring the wildcard.
func Has(granted []string, perm string) bool {
	for _, g := range granted {
		if g == All || g == perm {
			return true
		}
	}
	return false
}

// RoleTemplate seeds a system role at organization creation.
type RoleTemplate struct {
	Name        string
	Description string
	Permissions []string
}

// DefaultRoles are the system roles provisioned for every new organization.
// Owner is held by exactly one member and cannot be removed.
var DefaultRoles = []RoleTemplate{
	{
		Name:        "Owner",
		Description: "Organization owner, full access",
		Permissions: []string{All},
	},
	{
		Name:        "Admin",
		Description: "Full access to organization",
		Permissions: []string{All},
	},
	{
		Name:        "Manager",
		Description: "Manage teams, athletes and matches",
		Permissions: []string{
			AthleteView, AthleteCreate, AthleteUpdate, AthleteDelete,
			TeamView, TeamCreate, TeamUpdate, TeamDelete, TeamManageRoster,
			MatchView, MatchCreate, MatchUpdate, MatchDelete, MatchManageRoster, MatchUpdateResults,
			DocumentView, DocumentUpload, DocumentDelete,
			PaymentView, PaymentCreate, PaymentUpdate,
			TransportView, TransportManage,
			NotificationSend,
			UserView, UserInvite,
			ReportView,
		},
	},
	{
		Name:        "Coach",
		Description: "Manage teams and view athletes",
		Permissions: []string{
			AthleteView,
			TeamView, TeamManageRoster,
			MatchView, MatchManageRoster, MatchUpdateResults,
			DocumentView,
			TransportView,
			ReportView,
		},
	},
	{
		Name:        "Staff",
		Description: "View and basic operations",
		Permissions: []string{
			AthleteView,
			TeamView,
			MatchView,
			DocumentView, DocumentUpload,
			PaymentView, PaymentRecord,
			TransportView,
			ReportView,
		},
	},
	{
		Name:        "Parent",
		Description: "View own athlete data",
		Permissions: []string{
			AthleteView,
			TeamView,
			MatchView,
			DocumentView,
			PaymentView,
			TransportView,
		},
	},
	{
		Name:        "Viewer",
		Description: "Read-only access",
		Permissions: []string{
			AthleteView,
			TeamView,
			MatchView,
			DocumentView,
			ReportView,
		},
	},
}
