package dto

import (
	"time"

	"github.com/spec-kit/estate-marketplace/internal/domain"
)

// CreateListingRequest payload for new listings.
type CreateListingRequest struct {
	Title      string `json:"title"`
	City       string `json:"city"`
	PriceCents int64  `json:"price_cents"`
}

// ListingView is the public projection of a listing.
type ListingView struct {
	ID         string    `json:"id"`
	SellerID   string    `json:"seller_id"`
	Title      string    `json:"title"`
	City       string    `json:"city"`
	PriceCents int64     `json:"price_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewListingView maps a domain listing to its public projection.
func NewListingView(listing *domain.Listing) ListingView {
	return ListingView{
		ID:         listing.ID,
		SellerID:   listing.SellerID,
		Title:      listing.Title,
		City:       listing.City,
		PriceCents: listing.PriceCents,
		Status:     string(listing.Status),
		CreatedAt:  listing.CreatedAt,
	}
}
