package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/service"

	httptransport "github.com/spec-kit/catalog-service/internal/api/http"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) GetActiveByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || !user.IsActive {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memoryUserRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsActive = false
	return nil
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.AuthConfig{
		JWTSecret:       "handler-test-secret",
		Issuer:          "catalog-service",
		Audience:        "catalog-service-clients",
		TokenExpiryDays: 1,
		BcryptCost:      bcrypt.MinCost,
	}

	repo := newMemoryUserRepo()
	authService := service.NewAuthService(cfg, repo, events.NewInMemoryDispatcher())

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	middleware := auth.NewMiddleware(authService.TokenManager(), repo, auth.DefaultPublicPrefixes, logger, metrics)
	authorizer := auth.NewAuthorizer(auth.DefaultPublicPrefixes, logger, metrics)
	handler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)

	api := app.Group("/api", middleware.Handle, authorizer.Middleware())
	api.Post("/auth/register", handler.Register)
	api.Post("/auth/login", handler.Login)
	api.Post("/auth/password/change", handler.ChangePassword)
	api.Get("/me", handler.Me)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return doJSON(t, app, req)
}

func getJSON(t *testing.T, app *fiber.App, path, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return doJSON(t, app, req)
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func registerAccount(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, body := postJSON(t, app, "/api/auth/register", "", map[string]string{
		"email":     email,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	token := data["auth"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginMeRoundTrip(t *testing.T) {
	app := newAuthApp(t)
	registerAccount(t, app, "ada@example.com", "correct horse")

	resp, body := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)

	resp, body = getJSON(t, app, "/api/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	identity := body["data"].(map[string]any)
	assert.Equal(t, "ada@example.com", identity["email"])
	assert.Equal(t, "Ada", identity["firstName"])
	assert.Equal(t, true, identity["isAuthenticated"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := newAuthApp(t)
	registerAccount(t, app, "ada@example.com", "correct horse")

	resp, body := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong horse",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid credentials", body["message"])
}

func TestLoginUnknownAndWrongPasswordLookAlike(t *testing.T) {
	app := newAuthApp(t)
	registerAccount(t, app, "ada@example.com", "correct horse")

	_, wrongPassword := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong horse",
	})
	_, unknownUser := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "correct horse",
	})
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app := newAuthApp(t)
	registerAccount(t, app, "ada@example.com", "correct horse")

	resp, body := postJSON(t, app, "/api/auth/register", "", map[string]string{
		"email":     "ada@example.com",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  "another pass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestRegisterValidatesPayload(t *testing.T) {
	app := newAuthApp(t)

	resp, body := postJSON(t, app, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "details")
}

func TestChangePasswordRotatesCredentials(t *testing.T) {
	app := newAuthApp(t)
	token := registerAccount(t, app, "ada@example.com", "correct horse")

	resp, _ := postJSON(t, app, "/api/auth/password/change", token, map[string]string{
		"currentPassword": "correct horse",
		"newPassword":     "brand new pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "brand new pass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChangePasswordRejectsWrongCurrentPassword(t *testing.T) {
	app := newAuthApp(t)
	token := registerAccount(t, app, "ada@example.com", "correct horse")

	resp, _ := postJSON(t, app, "/api/auth/password/change", token, map[string]string{
		"currentPassword": "wrong horse",
		"newPassword":     "brand new pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeRequiresToken(t *testing.T) {
	app := newAuthApp(t)

	resp, body := getJSON(t, app, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "authentication required", body["message"])
}
