package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"TRADER", "INVESTOR", "TRADER_ADMIN", "INVESTOR_ADMIN", "SUPER_ADMIN"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.True(t, role.Valid())
	}

	for _, raw := range []string{"", "trader", "ADMIN", "GUEST"} {
		_, err := ParseRole(raw)
		require.Error(t, err, raw)
	}
}

func TestRoleClasses(t *testing.T) {
	cases := []struct {
		role     Role
		investor bool
		trader   bool
		admin    bool
	}{
		{RoleInvestor, true, false, false},
		{RoleTrader, false, true, false},
		{RoleInvestorAdmin, true, false, true},
		{RoleTraderAdmin, false, true, true},
		{RoleSuperAdmin, false, false, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.investor, tc.role.IsInvestorClass(), "%s investor class", tc.role)
		assert.Equal(t, tc.trader, tc.role.IsTraderClass(), "%s trader class", tc.role)
		assert.Equal(t, tc.admin, tc.role.IsAdminClass(), "%s admin class", tc.role)
	}
}

// Admin membership always precedes the ownership class so access checks
// evaluate admin-tagged roles under admin rules first.
func TestClassifyOrdersAdminFirst(t *testing.T) {
	assert.Equal(t, []RoleClass{ClassAdmin, ClassInvestor}, RoleInvestorAdmin.Classify())
	assert.Equal(t, []RoleClass{ClassAdmin, ClassTrader}, RoleTraderAdmin.Classify())
	assert.Equal(t, []RoleClass{ClassAdmin}, RoleSuperAdmin.Classify())
	assert.Equal(t, []RoleClass{ClassInvestor}, RoleInvestor.Classify())
	assert.Equal(t, []RoleClass{ClassTrader}, RoleTrader.Classify())
}
