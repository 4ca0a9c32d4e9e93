package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/estate-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/estate-marketplace/internal/auth"
	"github.com/spec-kit/estate-marketplace/internal/config"
	"github.com/spec-kit/estate-marketplace/internal/domain"
	"github.com/spec-kit/estate-marketplace/internal/observability"
	"github.com/spec-kit/estate-marketplace/internal/ratelimit"
	"github.com/spec-kit/estate-marketplace/internal/service"
)

type memAccountRepo struct {
	byID    map[string]*domain.Account
	byEmail map[string]*domain.Account
	nextID  int
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.Account),
	}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.nextID++
	account.ID = fmt.Sprintf("acc-%d", r.nextID)
	copied := *account
	r.byID[account.ID] = &copied
	r.byEmail[account.Email] = &copied
	return nil
}

func (r *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.byID[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *account
	r.byID[account.ID] = &copied
	r.byEmail[account.Email] = &copied
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *memAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, account := range r.byID {
		if account.Role == role {
			copied := *account
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memCounter struct {
	counts map[string]int64
}

func (c *memCounter) Incr(_ context.Context, key string) *goredis.IntCmd {
	c.counts[key]++
	return goredis.NewIntResult(c.counts[key], nil)
}

func (c *memCounter) Expire(_ context.Context, _ string, _ time.Duration) *goredis.BoolCmd {
	return goredis.NewBoolResult(true, nil)
}

func newTestApp(t *testing.T, loginLimit int) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "router-test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
			AdminEmail:            "root@example.com",
		},
	}

	authService := service.NewAuthService(cfg, newMemAccountRepo())
	gate := auth.NewRoleGate(authService.TokenManager(), auth.NewSingleAdminPolicy(cfg.Auth.AdminEmail))
	limiter := ratelimit.NewLimiter(&memCounter{counts: make(map[string]int64)}, loginLimit, time.Minute, "ratelimit:login")

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:   nil,
		Auth:     handlers.NewAuthHandler(authService, limiter),
		Admin:    handlers.NewAdminHandler(authService),
		Listings: nil,
		Gate:     gate,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, token string) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, app *fiber.App, path, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return body
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app := newTestApp(t, 100)

	resp, body := postJSON(t, app, "/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "hunter22", "role": "seller",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	registeredUser := data["user"].(map[string]any)

	resp, body = postJSON(t, app, "/auth/seller/login", map[string]string{
		"email": "dana@example.com", "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data = body["data"].(map[string]any)
	token := data["token"].(string)
	loggedInUser := data["user"].(map[string]any)
	require.Equal(t, registeredUser["id"], loggedInUser["id"])

	resp, body = getJSON(t, app, "/auth/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	me := body["data"].(map[string]any)
	require.Equal(t, loggedInUser["id"], me["id"])
	require.Equal(t, "seller", me["role"])
	require.Equal(t, "dana@example.com", me["email"])
}

func TestSellerLoginRejectsBuyerAccount(t *testing.T) {
	app := newTestApp(t, 100)

	resp, _ := postJSON(t, app, "/auth/register", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "pw123", "role": "buyer",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/auth/seller/login", map[string]string{
		"email": "bob@example.com", "password": "pw123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	require.Equal(t, "Account not found", errObj["message"])
}

func TestLoginRateLimited(t *testing.T) {
	app := newTestApp(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := postJSON(t, app, "/auth/login", map[string]string{
			"email": "ghost@example.com", "password": "pw",
		}, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, body := postJSON(t, app, "/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "pw",
	}, "")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	require.Equal(t, "RATE_LIMITED", errObj["code"])
}

func TestMeWithoutTokenRejected(t *testing.T) {
	app := newTestApp(t, 100)

	resp, body := getJSON(t, app, "/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	require.Equal(t, "No authentication token, access denied.", errObj["message"])
}

func TestAdminRouteEndToEnd(t *testing.T) {
	app := newTestApp(t, 100)

	resp, body := postJSON(t, app, "/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "hunter22", "role": "seller",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sellerToken := body["data"].(map[string]any)["token"].(string)

	resp, body = getJSON(t, app, "/admin/accounts?role=seller", sellerToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "Access denied. Admin access required.", errObj["message"])
}
