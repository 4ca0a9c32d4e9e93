package domain

import "fmt"

// Role classifies what a marketplace account is allowed to do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// ParseRole validates a raw role string against the closed set. Unknown
// values are rejected here so downstream code never compares free-form
// strings.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Title returns the display form used in access-denied messages.
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleSeller:
		return "Seller"
	case RoleBuyer:
		return "Buyer"
	default:
		return string(r)
	}
}

func (r Role) String() string {
	return string(r)
}
