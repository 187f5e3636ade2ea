package repository

import (
	"context"
	"time"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(
	ctx context.Context,
	conversationID int64,
	senderID int64,
	content string,
) (*models.Message, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, content, status)
		VALUES ($1, $2, $3, 'sent')
		RETURNING id, conversation_id, sender_id, content, status, created_at, read_at
	`

	var message models.Message
	err := r.db.QueryRow(ctx, query, conversationID, senderID, content).Scan(
		&message.ID,
		&message.ConversationID,
		&message.SenderID,
		&message.Content,
		&message.Status,
		&message.CreatedAt,
		&message.ReadAt,
	)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

func (r *MessageRepository) ListByConversation(
	ctx context.Context,
	conversationID int64,
	limit int,
	offset int,
) ([]models.Message, int, error) {
	totalQuery := `
		SELECT COUNT(*)
		FROM messages
		WHERE conversation_id = $1
	`

	var total int
	if err := r.db.QueryRow(ctx, totalQuery, conversationID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, conversation_id, sender_id, content, status, created_at, read_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Content,
			&message.Status,
			&message.CreatedAt,
			&message.ReadAt,
		); err != nil {
			return nil, 0, err
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// ListNewSince returns messages after the (created_at, id) checkpoint,
// oldest first. Comparing the pair instead of the timestamp alone keeps a
// row committed with the same created_at as the checkpoint from being
// skipped.
func (r *MessageRepository) ListNewSince(
	ctx context.Context,
	conversationID int64,
	since time.Time,
	afterID int64,
) ([]models.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, status, created_at, read_at
		FROM messages
		WHERE conversation_id = $1
		  AND (created_at, id) > ($2, $3)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, conversationID, since, afterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Content,
			&message.Status,
			&message.CreatedAt,
			&message.ReadAt,
		); err != nil {
			return nil, err
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// MarkConversationRead flips every counterpart message that is not yet read.
// Re-invoking is a no-op.
func (r *MessageRepository) MarkConversationRead(
	ctx context.Context,
	conversationID int64,
	readerID int64,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET status = 'read', read_at = NOW()
		WHERE conversation_id = $1
		  AND sender_id <> $2
		  AND status <> 'read'
	`, conversationID, readerID)
	return err
}

// MarkDelivered advances sent messages addressed to the recipient to
// delivered. Messages already delivered or read are left untouched, so the
// status sequence never regresses.
func (r *MessageRepository) MarkDelivered(
	ctx context.Context,
	messageIDs []int64,
	recipientID int64,
) error {
	if len(messageIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET status = 'delivered'
		WHERE id = ANY($1)
		  AND sender_id <> $2
		  AND status = 'sent'
	`, messageIDs, recipientID)
	return err
}
