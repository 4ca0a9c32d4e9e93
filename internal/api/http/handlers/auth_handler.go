package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-marketplace/internal/api/dto"
	"github.com/spec-kit/estate-marketplace/internal/auth"
	"github.com/spec-kit/estate-marketplace/internal/domain"
	"github.com/spec-kit/estate-marketplace/internal/ratelimit"
	"github.com/spec-kit/estate-marketplace/internal/service"
	apperrors "github.com/spec-kit/estate-marketplace/pkg/util"
)

// AuthHandler exposes registration, login and current-principal endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *ratelimit.Limiter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{auth: authService, limiter: limiter}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	role := domain.RoleBuyer
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			return apperrors.NewValidationError("role must be buyer or seller", nil)
		}
		role = parsed
	}

	account, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp, User: dto.NewAccountView(account)},
	})
}

// Login handles POST /auth/login for buyers and admins.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, "")
}

// SellerLogin handles POST /auth/seller/login.
func (h *AuthHandler) SellerLogin(c *fiber.Ctx) error {
	return h.login(c, domain.RoleSeller)
}

func (h *AuthHandler) login(c *fiber.Ctx, requireRole domain.Role) error {
	if !h.limiter.Allow(c.Context(), c.IP()) {
		return apperrors.NewTooManyRequests("Too many login attempts")
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password, requireRole)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp, User: dto.NewAccountView(account)},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No authentication token, access denied.")
	}

	account, err := h.auth.CurrentAccount(c.Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewAccountView(account)})
}
