package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/estate-marketplace/internal/domain"
	"github.com/spec-kit/estate-marketplace/internal/repository"
	apperrors "github.com/spec-kit/estate-marketplace/pkg/util"
)

// ListingService handles seller-owned property listings.
type ListingService struct {
	listings repository.ListingRepository
}

// NewListingService builds the service.
func NewListingService(listings repository.ListingRepository) *ListingService {
	return &ListingService{listings: listings}
}

// Create stores a new listing owned by sellerID.
func (s *ListingService) Create(ctx context.Context, sellerID, title, city string, priceCents int64) (*domain.Listing, error) {
	if title == "" || city == "" {
		return nil, apperrors.NewValidationError("title and city required", nil)
	}
	if priceCents <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", nil)
	}

	listing := &domain.Listing{
		SellerID:   sellerID,
		Title:      title,
		City:       city,
		PriceCents: priceCents,
		Status:     domain.ListingStatusPublished,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Get fetches a single listing.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing", nil)
		}
		return nil, err
	}
	return listing, nil
}

// ListOwn returns the seller's own listings.
func (s *ListingService) ListOwn(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	return s.listings.ListBySeller(ctx, sellerID)
}

// Archive hides a listing. Only the owning seller may archive it.
func (s *ListingService) Archive(ctx context.Context, sellerID, id string) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return apperrors.NewForbidden("listing belongs to another seller")
	}
	return s.listings.UpdateStatus(ctx, id, domain.ListingStatusArchived)
}
