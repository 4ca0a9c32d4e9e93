package auth

import "strings"

// AdminIdentityPolicy decides whether a principal carrying the admin role is
// an acceptable admin identity. The production deployment uses a single
// allow-listed operator email; the interface exists so a real multi-admin
// model can replace it without touching the role gate's control flow.
type AdminIdentityPolicy interface {
	Authorize(p *Principal) bool
}

// SingleAdminPolicy accepts exactly one configured admin email. An empty
// configuration rejects every admin token (fail closed).
type SingleAdminPolicy struct {
	email string
}

// NewSingleAdminPolicy builds the allow-list policy.
func NewSingleAdminPolicy(email string) *SingleAdminPolicy {
	return &SingleAdminPolicy{email: strings.TrimSpace(email)}
}

// Authorize reports whether the principal's email matches the allow-list.
func (p *SingleAdminPolicy) Authorize(principal *Principal) bool {
	if p.email == "" {
		return false
	}
	return principal.Email == p.email
}
