package repository

import (
	"context"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `
		SELECT id, owner_id, title, category_slug, country, salary,
			is_active, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`
	var job models.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.OwnerID,
		&job.Title,
		&job.CategorySlug,
		&job.Country,
		&job.Salary,
		&job.IsActive,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) ListActive(ctx context.Context) ([]models.Job, error) {
	query := `
		SELECT id, owner_id, title, category_slug, country, salary,
			is_active, created_at, updated_at
		FROM jobs
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID,
			&job.OwnerID,
			&job.Title,
			&job.CategorySlug,
			&job.Country,
			&job.Salary,
			&job.IsActive,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
