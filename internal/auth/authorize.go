package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/observability"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// Authorize is the single authorization decision point, invoked from both the
// pipeline stage and the per-route guard. Required roles combine with OR
// semantics; an empty set means authentication alone suffices.
func Authorize(identity *Identity, required []domain.Role) error {
	if !identity.IsAuthenticated() {
		return apperrors.NewForbidden(apperrors.KindUnauthenticated, "not authenticated")
	}
	if len(required) == 0 {
		return nil
	}
	for _, role := range required {
		if identity.HasRole(role) {
			return nil
		}
	}
	return apperrors.NewForbidden(apperrors.KindInsufficientRole, "insufficient permissions")
}

// RequiredRoles derives the role set for a request, first match wins: the
// X-Required-Roles header, then an /admin/ path segment, then /manager/.
func RequiredRoles(c *fiber.Ctx) []domain.Role {
	if header := c.Get(HeaderRequiredRoles); header != "" {
		return domain.ParseRoles(header)
	}
	path := c.Path()
	if strings.Contains(path, "/admin/") {
		return []domain.Role{domain.RoleAdmin}
	}
	if strings.Contains(path, "/manager/") {
		return []domain.Role{domain.RoleAdmin, domain.RoleManager}
	}
	return nil
}

// Authorizer enforces the decision as a pipeline stage for every
// non-public route.
type Authorizer struct {
	public  []string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthorizer constructs the pipeline-stage enforcer.
func NewAuthorizer(publicPrefixes []string, logger *zap.Logger, metrics *observability.Metrics) *Authorizer {
	return &Authorizer{public: publicPrefixes, logger: logger, metrics: metrics}
}

// Middleware runs the shared decision against the derived role set.
func (a *Authorizer) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isPublicPath(a.public, c.Path()) {
			return c.Next()
		}

		identity, _ := IdentityFromContext(c)
		required := RequiredRoles(c)
		if err := a.decide(identity, required); err != nil {
			a.logger.Warn("authorization denied",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("email", identityEmail(identity)),
				zap.Strings("required_roles", roleNames(required)),
			)
			a.metrics.RecordAuthzDenial(c.Path())
			return err
		}

		a.logger.Debug("authorization granted",
			zap.String("path", c.Path()),
			zap.String("email", identityEmail(identity)),
		)
		return c.Next()
	}
}

// decide wraps Authorize with a defensive catch-all so an unexpected panic in
// role handling still denies with a generic 403.
func (a *Authorizer) decide(identity *Identity, required []domain.Role) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("authorization panic", zap.Any("panic", r))
			err = apperrors.NewForbidden(apperrors.KindInternal, "forbidden")
		}
	}()
	return Authorize(identity, required)
}

// RequireRoles is the per-route declarative guard. It shares Authorize with
// the pipeline stage so the two enforcement points cannot drift.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := Authorize(identity, roles); err != nil {
			return err
		}
		return c.Next()
	}
}

func identityEmail(identity *Identity) string {
	if identity == nil {
		return ""
	}
	return identity.Email
}

func roleNames(roles []domain.Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}
