// File: internal/common/roles.go
package common

// User roles. GUEST is the registration default; ADMIN is assigned
// out-of-band (seed data or direct database grant), never self-service.
const (
	RoleGuest      = "GUEST"
	RoleSeller     = "SELLER"
	RoleBuyer      = "BUYER"
	RoleGovernment = "GOVERNMENT"
	RoleAdmin      = "ADMIN"
)

// ValidRole reports whether the given string names a known role.
func ValidRole(role string) bool {
	switch role {
	case RoleGuest, RoleSeller, RoleBuyer, RoleGovernment, RoleAdmin:
		return true
	}
	return false
}
