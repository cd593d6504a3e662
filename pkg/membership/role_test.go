package membership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/pkg/membership"
)

func TestRoleAtLeast(t *testing.T) {
	t.Parallel()

	cases := []struct {
		have, min membership.Role
		want      bool
	}{
		{membership.RoleMember, membership.RoleMember, true},
		{membership.RoleMember, membership.RoleAdmin, false},
		{membership.RoleMember, membership.RoleOwner, false},
		{membership.RoleAdmin, membership.RoleMember, true},
		{membership.RoleAdmin, membership.RoleAdmin, true},
		{membership.RoleAdmin, membership.RoleOwner, false},
		{membership.RoleOwner, membership.RoleMember, true},
		{membership.RoleOwner, membership.RoleAdmin, true},
		{membership.RoleOwner, membership.RoleOwner, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.have.AtLeast(tc.min),
			"%s at least %s", tc.have, tc.min)
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		for _, role := range []membership.Role{
			membership.RoleMember, membership.RoleAdmin, membership.RoleOwner,
		} {
			parsed, err := membership.ParseRole(role.String())
			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, err := membership.ParseRole("superuser")
		require.ErrorIs(t, err, membership.ErrUnknownRole)
	})
}
