package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// Headers and query parameters the authentication stage reads.
const (
	HeaderAuthToken     = "X-Auth-Token"
	HeaderRequiredRoles = "X-Required-Roles"

	bearerPrefix    = "Bearer "
	queryTokenParam = "token"
)

// DefaultPublicPrefixes lists the routes reachable without a token: login,
// registration and the API documentation. Matching is a case-sensitive
// prefix check.
var DefaultPublicPrefixes = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/swagger",
}

// Middleware is the authentication stage: it passes public routes through
// unauthenticated, or resolves exactly one identity and attaches it, or
// short-circuits with a uniform 401.
type Middleware struct {
	tokens  *TokenManager
	users   repository.UserRepository
	public  []string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewMiddleware constructs the authentication stage.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, publicPrefixes []string, logger *zap.Logger, metrics *observability.Metrics) *Middleware {
	return &Middleware{
		tokens:  tokens,
		users:   users,
		public:  publicPrefixes,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle enforces authentication for every non-public route. The specific
// failure (no token, bad signature, expired, stale user) is logged and
// counted but never exposed; callers always get the same 401 envelope.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if isPublicPath(m.public, c.Path()) {
		return c.Next()
	}

	identity, err := m.resolve(c)
	if err != nil {
		kind := failureKind(err)
		m.logger.Warn("authentication failed",
			zap.String("reason", kind),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("remote_addr", c.IP()),
		)
		m.metrics.RecordAuthFailure(kind)
		return apperrors.NewUnauthorized(kind)
	}

	storeIdentity(c, identity)
	return c.Next()
}

// resolve extracts, validates and maps a token to an active user. A panic
// anywhere in the chain is treated as one more authentication failure.
func (m *Middleware) resolve(c *fiber.Ctx) (identity *Identity, err error) {
	defer func() {
		if r := recover(); r != nil {
			identity = nil
			err = fmt.Errorf("authentication panic: %v", r)
		}
	}()

	raw, err := extractToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := m.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetActiveByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown and deactivated users are deliberately
			// indistinguishable to the caller.
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Identity{UserID: user.ID, Email: user.Email, User: user}, nil
}

// extractToken checks the three token sources in precedence order:
// Authorization bearer header, token query parameter, X-Auth-Token header.
func extractToken(c *fiber.Ctx) (string, error) {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):], nil
	}
	if token := c.Query(queryTokenParam); token != "" {
		return token, nil
	}
	if token := c.Get(HeaderAuthToken); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

func isPublicPath(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrNoToken):
		return apperrors.KindNoToken
	case errors.Is(err, ErrMalformedToken):
		return apperrors.KindMalformedToken
	case errors.Is(err, ErrExpiredToken):
		return apperrors.KindExpiredToken
	case errors.Is(err, ErrMissingClaims):
		return apperrors.KindMissingClaims
	case errors.Is(err, ErrUserNotFound):
		return apperrors.KindUserNotFound
	default:
		return apperrors.KindInternal
	}
}
