package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/karim-d/VentureLinkBack/internal/models"
)

type FavoriteRepository struct {
	db DBTX
}

func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a favorite unless the pair already exists. The second
// return value reports whether a new row was created.
func (r *FavoriteRepository) Create(
	ctx context.Context,
	userID int64,
	listingID int64,
) (*models.Favorite, bool, error) {
	query := `
		INSERT INTO favorites (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
		RETURNING id, user_id, listing_id, created_at
	`

	var favorite models.Favorite
	err := r.db.QueryRow(ctx, query, userID, listingID).Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.ListingID,
		&favorite.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &favorite, true, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID int64, listingID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND listing_id = $2
	`, userID, listingID)
	return err
}
