package services

import (
	"context"
	"strings"

	"github.com/karim-d/VentureLinkBack/internal/models"
	"github.com/karim-d/VentureLinkBack/internal/repository"
)

const latestUnreadLimit = 5

var knownNotificationTypes = map[string]struct{}{
	models.NotificationTypeNewMessage:     {},
	models.NotificationTypeJobApplication: {},
	models.NotificationTypeFavoriteAdded:  {},
	models.NotificationTypeChatInvitation: {},
}

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify records an unread notification. It is only ever called by other
// services in reaction to a domain action, never directly from a request.
func (s *NotificationService) Notify(
	ctx context.Context,
	userID int64,
	ntype string,
	title string,
	body *string,
	link *string,
) (*models.Notification, error) {
	if userID <= 0 || strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}
	if _, ok := knownNotificationTypes[ntype]; !ok {
		return nil, ErrInvalidInput
	}

	return s.notificationRepo.Create(ctx, userID, ntype, title, body, link)
}

func (s *NotificationService) ListInbox(
	ctx context.Context,
	actorID int64,
	page int,
	limit int,
) ([]models.Notification, int, error) {
	if actorID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	return s.notificationRepo.ListForUser(ctx, actorID, limit, (page-1)*limit)
}

// MarkRead is ownership scoped: a notification that does not exist or
// belongs to someone else leaves no trace either way.
func (s *NotificationService) MarkRead(ctx context.Context, actorID int64, notificationID int64) error {
	if actorID <= 0 || notificationID <= 0 {
		return ErrInvalidInput
	}

	return s.notificationRepo.MarkRead(ctx, notificationID, actorID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actorID int64) error {
	if actorID <= 0 {
		return ErrInvalidInput
	}

	return s.notificationRepo.MarkAllRead(ctx, actorID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

func (s *NotificationService) ListLatestUnread(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.notificationRepo.ListLatestUnread(ctx, userID, latestUnreadLimit)
}
