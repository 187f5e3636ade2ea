package stream

import (
	"context"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type NotificationSource interface {
	UnreadCount(ctx context.Context, userID int64) (int, error)
	ListLatestUnread(ctx context.Context, userID int64) ([]models.Notification, error)
}

// NotificationPoller re-reads the caller's unread state each tick. It holds
// no checkpoint: the inbox query is cheap and the update frame always
// reflects the current store.
type NotificationPoller struct {
	source NotificationSource
	userID int64
}

func NewNotificationPoller(source NotificationSource, userID int64) *NotificationPoller {
	return &NotificationPoller{
		source: source,
		userID: userID,
	}
}

func (p *NotificationPoller) Poll(ctx context.Context) (int, []models.Notification, error) {
	count, err := p.source.UnreadCount(ctx, p.userID)
	if err != nil {
		return 0, nil, err
	}

	latest, err := p.source.ListLatestUnread(ctx, p.userID)
	if err != nil {
		return 0, nil, err
	}

	return count, latest, nil
}
