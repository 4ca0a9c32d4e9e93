package domain

import "time"

// ListingStatus represents lifecycle states for a property listing.
type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "DRAFT"
	ListingStatusPublished ListingStatus = "PUBLISHED"
	ListingStatusArchived  ListingStatus = "ARCHIVED"
)

// Listing is the domain model for a property offered by a seller.
type Listing struct {
	ID         string
	SellerID   string
	Title      string
	City       string
	PriceCents int64
	Status     ListingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
