package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-marketplace/internal/domain"
	apperrors "github.com/spec-kit/estate-marketplace/pkg/util"
)

const principalKey = "auth_principal"

// RoleGate validates bearer tokens and enforces per-route role requirements.
type RoleGate struct {
	tokens      *TokenManager
	adminPolicy AdminIdentityPolicy
}

// NewRoleGate constructs the gate.
func NewRoleGate(tokens *TokenManager, adminPolicy AdminIdentityPolicy) *RoleGate {
	return &RoleGate{tokens: tokens, adminPolicy: adminPolicy}
}

// Require returns middleware that admits only principals whose role is in
// the allowed set. Checks run in a fixed order and every failure is terminal:
// missing token, then signature/expiry, then role, then the admin identity
// allow-list when the route admits admins.
func (g *RoleGate) Require(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get("Authorization"))
		if !ok {
			return apperrors.NewUnauthorized("No authentication token, access denied.")
		}

		principal, err := g.tokens.ParseToken(token)
		if err != nil {
			return apperrors.NewUnauthorized("Token is invalid or expired.")
		}

		if len(allowedSet) > 0 {
			if _, exists := allowedSet[principal.Role]; !exists {
				return apperrors.NewForbidden(fmt.Sprintf("Access denied. %s access required.", requiredTitle(allowed)))
			}
		}

		// The operator allow-list applies only where the route demands the
		// admin role, not to admins passing through an unrestricted gate.
		if _, wantsAdmin := allowedSet[domain.RoleAdmin]; wantsAdmin && principal.Role == domain.RoleAdmin {
			if !g.adminPolicy.Authorize(principal) {
				return apperrors.NewForbidden("Invalid admin credentials.")
			}
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// Authenticated returns middleware that admits any valid principal without a
// role restriction.
func (g *RoleGate) Authenticated() fiber.Handler {
	return g.Require()
}

// PrincipalFromContext retrieves the authenticated identity set by Require.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func requiredTitle(allowed []domain.Role) string {
	titles := make([]string, 0, len(allowed))
	for _, role := range allowed {
		titles = append(titles, role.Title())
	}
	return strings.Join(titles, " or ")
}
