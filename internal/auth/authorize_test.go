package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

func identityFor(email string) *auth.Identity {
	user := &domain.User{ID: uuid.NewString(), Email: email, IsActive: true}
	return &auth.Identity{UserID: user.ID, Email: email, User: user}
}

func TestAuthorizeDeniesWithoutIdentity(t *testing.T) {
	err := auth.Authorize(nil, nil)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	// The same holds when roles are required.
	err = auth.Authorize(nil, []domain.Role{domain.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorizeEmptySetRequiresAuthenticationOnly(t *testing.T) {
	assert.NoError(t, auth.Authorize(identityFor("bob@example.com"), nil))
	assert.NoError(t, auth.Authorize(identityFor("bob@example.com"), []domain.Role{}))
}

func TestAuthorizeAdminByEmailSubstring(t *testing.T) {
	required := []domain.Role{domain.RoleAdmin}

	assert.NoError(t, auth.Authorize(identityFor("admin@example.com"), required))
	assert.NoError(t, auth.Authorize(identityFor("ADMIN@EXAMPLE.COM"), required))
	assert.NoError(t, auth.Authorize(identityFor("site-administrator@example.com"), required))

	err := auth.Authorize(identityFor("bob@example.com"), required)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorizeManagerByEmailSubstring(t *testing.T) {
	required := []domain.Role{domain.RoleManager}

	assert.NoError(t, auth.Authorize(identityFor("manager@example.com"), required))
	assert.NoError(t, auth.Authorize(identityFor("Floor.Manager@example.com"), required))
	assert.Error(t, auth.Authorize(identityFor("bob@example.com"), required))
}

func TestAuthorizeOrSemantics(t *testing.T) {
	required := []domain.Role{domain.RoleAdmin, domain.RoleManager}

	assert.NoError(t, auth.Authorize(identityFor("manager@example.com"), required))
	assert.NoError(t, auth.Authorize(identityFor("admin@example.com"), required))
	assert.Error(t, auth.Authorize(identityFor("bob@example.com"), required))
}

func TestAuthorizeUserRoleMatchesAnyIdentity(t *testing.T) {
	assert.NoError(t, auth.Authorize(identityFor("bob@example.com"), []domain.Role{domain.RoleUser}))
	assert.NoError(t, auth.Authorize(identityFor("bob@example.com"), []domain.Role{domain.Role("user")}))
}

func TestAuthorizeUnknownRoleDeniesEveryone(t *testing.T) {
	required := []domain.Role{domain.Role("Auditor")}

	assert.Error(t, auth.Authorize(identityFor("admin@example.com"), required))
	assert.Error(t, auth.Authorize(identityFor("bob@example.com"), required))
}

func TestAuthorizeIsIdempotent(t *testing.T) {
	identity := identityFor("admin@example.com")
	required := []domain.Role{domain.RoleAdmin}

	for i := 0; i < 3; i++ {
		assert.NoError(t, auth.Authorize(identity, required))
	}
}

func TestIdentityIsAuthenticated(t *testing.T) {
	var nilIdentity *auth.Identity
	assert.False(t, nilIdentity.IsAuthenticated())

	assert.False(t, (&auth.Identity{UserID: uuid.NewString()}).IsAuthenticated())
	assert.False(t, (&auth.Identity{User: &domain.User{}}).IsAuthenticated())
	assert.True(t, identityFor("bob@example.com").IsAuthenticated())
}
