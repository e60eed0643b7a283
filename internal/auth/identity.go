package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the request-scoped authenticated caller. It exists in context
// if and only if a token was validated against a currently active user, and
// it lives for exactly one request.
type Identity struct {
	UserID string
	Email  string
	User   *domain.User
}

// IsAuthenticated reports whether both the user ID and the full user record
// are attached.
func (id *Identity) IsAuthenticated() bool {
	return id != nil && id.UserID != "" && id.User != nil
}

// HasRole reports whether the identity satisfies a single role. Admin and
// Manager membership is derived from the email address; RoleUser is satisfied
// by any authenticated identity. A role-membership table can replace the
// email heuristic here without touching the authorization decision.
func (id *Identity) HasRole(role domain.Role) bool {
	if !id.IsAuthenticated() {
		return false
	}
	email := strings.ToLower(id.Email)
	switch {
	case role.Is(domain.RoleAdmin):
		return strings.Contains(email, "admin")
	case role.Is(domain.RoleManager):
		return strings.Contains(email, "manager")
	case role.Is(domain.RoleUser):
		return true
	default:
		return false
	}
}

func storeIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}

// IdentityFromContext retrieves the authenticated caller, if any. It performs
// no I/O; it only reads what the authentication stage attached.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	if !ok || !identity.IsAuthenticated() {
		return nil, false
	}
	return identity, true
}
