package users

import "fmt"

// Role is the closed set of account roles. Admin roles belong to two
// capability classes at once: their ownership class and the admin class.
type Role string

const (
	RoleTrader        Role = "TRADER"
	RoleInvestor      Role = "INVESTOR"
	RoleTraderAdmin   Role = "TRADER_ADMIN"
	RoleInvestorAdmin Role = "INVESTOR_ADMIN"
	RoleSuperAdmin    Role = "SUPER_ADMIN"
)

// RoleClass groups concrete roles that share access behaviour.
type RoleClass string

const (
	ClassInvestor RoleClass = "INVESTOR_CLASS"
	ClassTrader   RoleClass = "TRADER_CLASS"
	ClassAdmin    RoleClass = "ADMIN_CLASS"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleTrader, RoleInvestor, RoleTraderAdmin, RoleInvestorAdmin, RoleSuperAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// IsInvestorClass reports membership of the investor ownership class.
func (r Role) IsInvestorClass() bool {
	return r == RoleInvestor || r == RoleInvestorAdmin
}

// IsTraderClass reports membership of the trader ownership class.
func (r Role) IsTraderClass() bool {
	return r == RoleTrader || r == RoleTraderAdmin
}

// IsAdminClass reports membership of the admin class.
func (r Role) IsAdminClass() bool {
	return r == RoleTraderAdmin || r == RoleInvestorAdmin || r == RoleSuperAdmin
}

// Classify returns the applicable classes in priority order. The admin class
// always comes first so that access checks never evaluate an admin-tagged
// role under an ownership rule.
func (r Role) Classify() []RoleClass {
	var classes []RoleClass
	if r.IsAdminClass() {
		classes = append(classes, ClassAdmin)
	}
	if r.IsInvestorClass() {
		classes = append(classes, ClassInvestor)
	}
	if r.IsTraderClass() {
		classes = append(classes, ClassTrader)
	}
	return classes
}
