package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-marketplace/internal/api/dto"
	"github.com/spec-kit/estate-marketplace/internal/domain"
	"github.com/spec-kit/estate-marketplace/internal/service"
	apperrors "github.com/spec-kit/estate-marketplace/pkg/util"
)

// AdminHandler exposes moderation endpoints gated to the admin role.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// ListAccounts handles GET /admin/accounts?role=seller.
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	role, err := domain.ParseRole(c.Query("role", string(domain.RoleSeller)))
	if err != nil {
		return apperrors.NewValidationError("unknown role filter", nil)
	}

	accounts, err := h.auth.ListAccounts(c.Context(), role)
	if err != nil {
		return err
	}

	views := make([]dto.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, dto.NewAccountView(account))
	}
	return c.JSON(fiber.Map{"data": views})
}

// SuspendAccount handles POST /admin/accounts/:id/suspend.
func (h *AdminHandler) SuspendAccount(c *fiber.Ctx) error {
	return h.setStatus(c, domain.AccountStatusSuspended)
}

// ReinstateAccount handles POST /admin/accounts/:id/reinstate.
func (h *AdminHandler) ReinstateAccount(c *fiber.Ctx) error {
	return h.setStatus(c, domain.AccountStatusActive)
}

func (h *AdminHandler) setStatus(c *fiber.Ctx, status domain.AccountStatus) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("account id required", nil)
	}

	account, err := h.auth.SetAccountStatus(c.Context(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountView(account)})
}
