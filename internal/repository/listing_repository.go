package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/estate-marketplace/internal/domain"
)

// ListingRepository defines persistence access for property listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error)
	UpdateStatus(ctx context.Context, id string, status domain.ListingStatus) error
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository returns a Postgres-backed implementation.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (seller_id, title, city, price_cents, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		listing.SellerID,
		listing.Title,
		listing.City,
		listing.PriceCents,
		listing.Status,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	const query = `
        SELECT id, seller_id, title, city, price_cents, status, created_at, updated_at
        FROM listings WHERE id=$1`

	var listing domain.Listing
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.SellerID,
		&listing.Title,
		&listing.City,
		&listing.PriceCents,
		&listing.Status,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	const query = `
        SELECT id, seller_id, title, city, price_cents, status, created_at, updated_at
        FROM listings WHERE seller_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.SellerID,
			&listing.Title,
			&listing.City,
			&listing.PriceCents,
			&listing.Status,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}
	return listings, rows.Err()
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	const query = `UPDATE listings SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
