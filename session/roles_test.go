package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campushub/admission-portal/session"
)

func TestRoleFromBackend(t *testing.T) {
	cases := []struct {
		backendRole string
		want        session.Role
	}{
		{"SUPERADMIN", session.RoleSuperAdmin},
		{"ADMIN", session.RoleAdmin},
		{"CANDIDAT", session.RoleCandidate},
		{"ETUDIANT", session.RoleStudent},
		{"", session.RoleNone},
		{"PROFESSOR", session.RoleNone},
		{"admin", session.RoleNone}, // backend roles are uppercase, no leniency
	}

	for _, tc := range cases {
		t.Run("maps "+tc.backendRole, func(t *testing.T) {
			require.Equal(t, tc.want, session.RoleFromBackend(tc.backendRole))
		})
	}
}

func TestRoleHomeRoute(t *testing.T) {
	require.Equal(t, "/admin", session.RoleSuperAdmin.HomeRoute())
	require.Equal(t, "/admin", session.RoleAdmin.HomeRoute())
	require.Equal(t, "/student", session.RoleCandidate.HomeRoute())
	require.Equal(t, "/student", session.RoleStudent.HomeRoute())
	require.Equal(t, "/", session.RoleNone.HomeRoute())
}

func TestRoleIn(t *testing.T) {
	t.Run("member of allowed set", func(t *testing.T) {
		require.True(t, session.RoleStudent.In(session.RoleCandidate, session.RoleStudent))
	})

	t.Run("not a member", func(t *testing.T) {
		require.False(t, session.RoleAdmin.In(session.RoleCandidate, session.RoleStudent))
	})

	t.Run("empty allowed set", func(t *testing.T) {
		require.False(t, session.RoleAdmin.In())
	})
}
