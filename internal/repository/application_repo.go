package repository

import (
	"context"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type ApplicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(
	ctx context.Context,
	jobID int64,
	applicantID int64,
	coverNote *string,
) (*models.JobApplication, error) {
	query := `
		INSERT INTO job_applications (job_id, applicant_id, cover_note)
		VALUES ($1, $2, $3)
		RETURNING id, job_id, applicant_id, cover_note, created_at
	`

	var application models.JobApplication
	err := r.db.QueryRow(ctx, query, jobID, applicantID, coverNote).Scan(
		&application.ID,
		&application.JobID,
		&application.ApplicantID,
		&application.CoverNote,
		&application.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &application, nil
}
