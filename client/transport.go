package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Principal is the authenticated identity as seen by the client.
type Principal struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status string `json:"status"`
}

// Role mirrors the server's closed role set.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// AuthResult is the {token, user} envelope returned by login and register.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Principal `json:"user"`
}

type dataEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying transport; mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionExpiredHook registers the callback fired when a request outside
// the login endpoints comes back 401. The hook is the only navigation side
// effect the transport is allowed to trigger.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// Client is the outbound interceptor: it attaches the bearer token from the
// session store on every request and translates failures into the Class
// taxonomy.
type Client struct {
	baseURL          string
	http             *http.Client
	store            SessionStore
	onSessionExpired func()
}

// New builds a Client against baseURL using store as the token source.
func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates a buyer or admin via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, *Error) {
	return c.loginAt(ctx, "/auth/login", email, password)
}

// SellerLogin authenticates a seller via POST /auth/seller/login.
func (c *Client) SellerLogin(ctx context.Context, email, password string) (*AuthResult, *Error) {
	return c.loginAt(ctx, "/auth/seller/login", email, password)
}

func (c *Client) loginAt(ctx context.Context, path, email, password string) (*AuthResult, *Error) {
	body := map[string]string{"email": email, "password": password}
	var payload AuthResult
	if err := c.do(ctx, http.MethodPost, path, body, &payload, true); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RegisterRequest carries the profile fields for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Register creates an account via POST /auth/register; the new account is
// logged in immediately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, *Error) {
	var payload AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &payload, true); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Me fetches the current principal via GET /auth/me.
func (c *Client) Me(ctx context.Context) (*Principal, *Error) {
	var principal Principal
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &principal, false); err != nil {
		return nil, err
	}
	return &principal, nil
}

// do performs one request: bearer attachment, JSON codec, central error
// classification. login routes the credential-specific 401/404 branches.
func (c *Client) do(ctx context.Context, method, path string, body, out any, login bool) *Error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Class: ClassUnknown, Message: msgUnknown}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Class: ClassUnknown, Message: msgUnknown}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// No response at all: network failure and timeout classify the same.
		return unreachable()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return unreachable()
	}

	var envelope dataEnvelope
	_ = json.Unmarshal(raw, &envelope)

	if resp.StatusCode >= 400 {
		serverMsg := ""
		if envelope.Error != nil {
			serverMsg = envelope.Error.Message
		}
		classified := classify(resp.StatusCode, serverMsg, login)
		if classified.Class == ClassSessionExpired {
			_ = c.store.ClearToken()
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
		}
		return classified
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &Error{Class: ClassUnknown, Message: msgUnknown, Status: resp.StatusCode}
		}
	}
	return nil
}
