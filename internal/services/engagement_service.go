package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/karim-d/VentureLinkBack/internal/models"
	"github.com/karim-d/VentureLinkBack/internal/repository"
)

// EngagementService covers favorites and job applications, the two actions
// that fan out notifications to record owners.
type EngagementService struct {
	favoriteRepo    *repository.FavoriteRepository
	applicationRepo *repository.ApplicationRepository
	listingRepo     listingReader
	jobRepo         jobReader
	userRepo        userReader
	notifications   notifier
}

func NewEngagementService(
	favoriteRepo *repository.FavoriteRepository,
	applicationRepo *repository.ApplicationRepository,
	listingRepo listingReader,
	jobRepo jobReader,
	userRepo userReader,
	notifications notifier,
) *EngagementService {
	return &EngagementService{
		favoriteRepo:    favoriteRepo,
		applicationRepo: applicationRepo,
		listingRepo:     listingRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

// AddFavorite records the pair and notifies the listing owner the first
// time. Re-favoriting is a no-op.
func (s *EngagementService) AddFavorite(
	ctx context.Context,
	actorID int64,
	listingID int64,
) (*models.Favorite, error) {
	if listingID <= 0 {
		return nil, ErrInvalidInput
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.OwnerID == actorID {
		return nil, ErrSelfInteraction
	}

	favorite, created, err := s.favoriteRepo.Create(ctx, actorID, listingID)
	if err != nil {
		return nil, err
	}

	if created {
		title := "Someone favorited your listing"
		if actor, err := s.userRepo.GetByID(ctx, actorID); err == nil {
			title = fmt.Sprintf("%s favorited your listing", actor.Email)
		}
		body := fmt.Sprintf("Your listing %q was added to favorites.", listing.Title)
		link := fmt.Sprintf("/listings/%d", listing.ID)
		if _, err := s.notifications.Notify(
			ctx,
			listing.OwnerID,
			models.NotificationTypeFavoriteAdded,
			title,
			&body,
			&link,
		); err != nil {
			log.Printf("favorite notification: %v", err)
		}
	}

	return favorite, nil
}

func (s *EngagementService) RemoveFavorite(ctx context.Context, actorID int64, listingID int64) error {
	if listingID <= 0 {
		return ErrInvalidInput
	}
	return s.favoriteRepo.Delete(ctx, actorID, listingID)
}

func (s *EngagementService) ApplyToJob(
	ctx context.Context,
	actorID int64,
	jobID int64,
	coverNote *string,
) (*models.JobApplication, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.OwnerID == actorID {
		return nil, ErrSelfInteraction
	}

	application, err := s.applicationRepo.Create(ctx, jobID, actorID, coverNote)
	if err != nil {
		return nil, err
	}

	title := "New application for your job posting"
	if actor, err := s.userRepo.GetByID(ctx, actorID); err == nil {
		title = fmt.Sprintf("%s applied to your job posting", actor.Email)
	}
	body := fmt.Sprintf("You received a new application for %q.", job.Title)
	link := fmt.Sprintf("/jobs/%d/applications", job.ID)
	if _, err := s.notifications.Notify(
		ctx,
		job.OwnerID,
		models.NotificationTypeJobApplication,
		title,
		&body,
		&link,
	); err != nil {
		log.Printf("job application notification: %v", err)
	}

	return application, nil
}
