package repository

import (
	"context"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(
	ctx context.Context,
	userID int64,
	ntype string,
	title string,
	body *string,
	link *string,
) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, body, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, type, title, body, link, is_read, created_at
	`

	var notification models.Notification
	err := r.db.QueryRow(ctx, query, userID, ntype, title, body, link).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Type,
		&notification.Title,
		&notification.Body,
		&notification.Link,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *NotificationRepository) ListForUser(
	ctx context.Context,
	userID int64,
	limit int,
	offset int,
) ([]models.Notification, int, error) {
	totalQuery := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1
	`

	var total int
	if err := r.db.QueryRow(ctx, totalQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, type, title, body, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Title,
			&notification.Body,
			&notification.Link,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, 0, err
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepository) ListLatestUnread(
	ctx context.Context,
	userID int64,
	limit int,
) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, body, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		  AND is_read = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Title,
			&notification.Body,
			&notification.Link,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1
		  AND is_read = FALSE
	`, userID).Scan(&count)
	return count, err
}

// MarkRead flips is_read only when the notification belongs to the caller.
// A non-matching id or owner affects zero rows and is not reported back.
func (r *NotificationRepository) MarkRead(
	ctx context.Context,
	notificationID int64,
	userID int64,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1
		  AND user_id = $2
		  AND is_read = FALSE
	`, notificationID, userID)
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1
		  AND is_read = FALSE
	`, userID)
	return err
}
