package models

import "time"

type Job struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Title        string    `json:"title"`
	CategorySlug string    `json:"category_slug"`
	Country      string    `json:"country"`
	Salary       *string   `json:"salary"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type JobApplication struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID int64     `json:"applicant_id"`
	CoverNote   *string   `json:"cover_note"`
	CreatedAt   time.Time `json:"created_at"`
}
