package repository

import (
	"context"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type InvestorProfileRepository struct {
	db DBTX
}

func NewInvestorProfileRepository(db DBTX) *InvestorProfileRepository {
	return &InvestorProfileRepository{db: db}
}

func (r *InvestorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.InvestorProfile, error) {
	query := `
		SELECT id, user_id, full_name, bio, industries, stages, geo_focus,
			ticket_min, ticket_max, created_at, updated_at
		FROM investor_profiles
		WHERE user_id = $1
	`
	var profile models.InvestorProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Bio,
		&profile.Industries,
		&profile.Stages,
		&profile.GeoFocus,
		&profile.TicketMin,
		&profile.TicketMax,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
