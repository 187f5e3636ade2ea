package repository

import (
	"context"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type ListingRepository struct {
	db DBTX
}

func NewListingRepository(db DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	query := `
		SELECT id, owner_id, title, category_slug, country, asking_price,
			description, is_active, created_at, updated_at
		FROM listings
		WHERE id = $1
	`
	var listing models.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.CategorySlug,
		&listing.Country,
		&listing.AskingPrice,
		&listing.Description,
		&listing.IsActive,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListActive returns active listings newest first, the order the matching
// scorer uses for tie-breaking.
func (r *ListingRepository) ListActive(ctx context.Context) ([]models.Listing, error) {
	query := `
		SELECT id, owner_id, title, category_slug, country, asking_price,
			description, is_active, created_at, updated_at
		FROM listings
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]models.Listing, 0)
	for rows.Next() {
		var listing models.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.OwnerID,
			&listing.Title,
			&listing.CategorySlug,
			&listing.Country,
			&listing.AskingPrice,
			&listing.Description,
			&listing.IsActive,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
