package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-marketplace/internal/api/dto"
	"github.com/spec-kit/estate-marketplace/internal/auth"
	"github.com/spec-kit/estate-marketplace/internal/service"
	apperrors "github.com/spec-kit/estate-marketplace/pkg/util"
)

// ListingsHandler exposes listing endpoints. Creation and archival are gated
// to sellers; single-listing fetch is public.
type ListingsHandler struct {
	listings *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listingService *service.ListingService) *ListingsHandler {
	return &ListingsHandler{listings: listingService}
}

// Create handles POST /listings.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No authentication token, access denied.")
	}

	var req dto.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.Create(c.Context(), principal.SubjectID, req.Title, req.City, req.PriceCents)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewListingView(listing)})
}

// ListOwn handles GET /listings (seller scope).
func (h *ListingsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No authentication token, access denied.")
	}

	listings, err := h.listings.ListOwn(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}

	views := make([]dto.ListingView, 0, len(listings))
	for _, listing := range listings {
		views = append(views, dto.NewListingView(listing))
	}
	return c.JSON(fiber.Map{"data": views})
}

// Get handles GET /listings/:id (public).
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listings.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingView(listing)})
}

// Archive handles POST /listings/:id/archive.
func (h *ListingsHandler) Archive(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No authentication token, access denied.")
	}

	if err := h.listings.Archive(c.Context(), principal.SubjectID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
