package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role   string
		action Action
		want   bool
	}{
		{RoleAdmin, ActionManageUsers, true},
		{RoleSindico, ActionManageUsers, false},
		{RoleGestao, ActionManageUsers, false},
		{RoleMorador, ActionManageUsers, false},

		{RoleAdmin, ActionReservationExempt, true},
		{RoleSindico, ActionReservationExempt, true},
		{RoleSubsindico, ActionReservationExempt, false},
		{RoleGestao, ActionReservationExempt, false},

		{RoleAdmin, ActionDeleteOccurrence, true},
		{RoleSindico, ActionDeleteOccurrence, false},

		{RoleGestao, ActionChangeRequestStatus, true},
		{RoleSubsindico, ActionChangeRequestStatus, true},
		{RoleMorador, ActionChangeRequestStatus, false},

		{RoleSindico, ActionManageVotings, true},
		{RoleMorador, ActionManageVotings, false},

		{"gestao", ActionManageNotices, true}, // papel normalizado
		{"", ActionManageNotices, false},
		{RoleAdmin, Action("acao_desconhecida"), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.action), "%s/%s", tc.role, tc.action)
	}
}

func TestIsManagement(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleGestao, RoleSindico, RoleSubsindico, "admin"} {
		assert.True(t, IsManagement(role), role)
	}
	assert.False(t, IsManagement(RoleMorador))
	assert.False(t, IsManagement("VISITANTE"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("morador"))
	assert.True(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("ROOT"))
}
