package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHas(t *testing.T) {
	granted := []string{AthleteView, TeamView, PaymentRecord}

	assert.True(t, Has(granted, AthleteView))
	assert.True(t, Has(granted, PaymentRecord))
	assert.False(t, Has(granted, AthleteDelete))
	assert.False(t, Has(granted, RoleCreate))
}

func TestHasWildcard(t *testing.T) {
	granted := []string{All}

	assert.True(t, Has(granted, AthleteDelete))
	assert.True(t, Has(granted, AuditView))
	assert.True(t, Has(granted, "anything.at.all"))
}

func TestHasEmpty(t *testing.T) {
	assert.False(t, Has(nil, AthleteView))
	assert.False(t, Has([]string{}, AthleteView))
}

func TestDefaultRolesOwnerAndAdminHaveFullAccess(t *testing.T) {
	for _, tmpl := range DefaultRoles {
		switch tmpl.Name {
		case "Owner", "Admin":
			assert.Equal(t, []string{All}, tmpl.Permissions, tmpl.Name)
		default:
			assert.NotContains(t, tmpl.Permissions, All, tmpl.Name)
		}
	}
}

func TestDefaultRolesViewerIsReadOnly(t *testing.T) {
	var viewer *RoleTemplate
	for i := range DefaultRoles {
		if DefaultRoles[i].Name == "Viewer" {
			viewer = &DefaultRoles[i]
		}
	}
	if assert.NotNil(t, viewer) {
		for _, perm := range viewer.Permissions {
			assert.NotContains(t, perm, ".create")
			assert.NotContains(t, perm, ".update")
			assert.NotContains(t, perm, ".delete")
		}
	}
}
