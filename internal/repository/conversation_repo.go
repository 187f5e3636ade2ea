package repository

import (
	"context"
	"database/sql"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type ConversationRepository struct {
	db DBTX
}

func NewConversationRepository(db DBTX) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// CreateOrGet inserts a conversation for the given pairing or returns the
// existing one. The second return value reports whether a new row was
// created.
func (r *ConversationRepository) CreateOrGet(
	ctx context.Context,
	ctype string,
	buyerID int64,
	sellerID int64,
	listingID *int64,
	jobID *int64,
) (*models.Conversation, bool, error) {
	query := `
		INSERT INTO conversations (type, buyer_id, seller_id, listing_id, job_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (type, buyer_id, seller_id, COALESCE(listing_id, 0), COALESCE(job_id, 0))
		DO UPDATE SET type = conversations.type
		RETURNING id, type, buyer_id, seller_id, listing_id, job_id,
			last_message_at, created_at, (xmax = 0)
	`

	var conversation models.Conversation
	var created bool
	err := r.db.QueryRow(ctx, query, ctype, buyerID, sellerID, listingID, jobID).Scan(
		&conversation.ID,
		&conversation.Type,
		&conversation.BuyerID,
		&conversation.SellerID,
		&conversation.ListingID,
		&conversation.JobID,
		&conversation.LastMessageAt,
		&conversation.CreatedAt,
		&created,
	)
	if err != nil {
		return nil, false, err
	}

	return &conversation, created, nil
}

func (r *ConversationRepository) GetByIDForParticipant(
	ctx context.Context,
	conversationID int64,
	participantID int64,
) (*models.Conversation, error) {
	query := `
		SELECT id, type, buyer_id, seller_id, listing_id, job_id, last_message_at, created_at
		FROM conversations
		WHERE id = $1 AND (buyer_id = $2 OR seller_id = $2)
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, conversationID, participantID).Scan(
		&conversation.ID,
		&conversation.Type,
		&conversation.BuyerID,
		&conversation.SellerID,
		&conversation.ListingID,
		&conversation.JobID,
		&conversation.LastMessageAt,
		&conversation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &conversation, nil
}

func (r *ConversationRepository) ListForParticipant(
	ctx context.Context,
	participantID int64,
) ([]models.ConversationSummary, error) {
	query := `
		SELECT
			c.id,
			c.type,
			c.buyer_id,
			c.seller_id,
			c.listing_id,
			c.job_id,
			c.last_message_at,
			c.created_at,
			lm.id,
			lm.conversation_id,
			lm.sender_id,
			lm.content,
			lm.status,
			lm.created_at,
			lm.read_at,
			COALESCE(uc.unread_count, 0)
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, sender_id, content, status, created_at, read_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE conversation_id = c.id
			  AND sender_id <> $1
			  AND status <> 'read'
		) uc ON TRUE
		WHERE c.buyer_id = $1 OR c.seller_id = $1
		ORDER BY COALESCE(c.last_message_at, c.created_at) DESC, c.id DESC
	`

	rows, err := r.db.Query(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var summary models.ConversationSummary
		var messageID sql.NullInt64
		var messageConversationID sql.NullInt64
		var messageSenderID sql.NullInt64
		var messageContent sql.NullString
		var messageStatus sql.NullString
		var messageCreatedAt sql.NullTime
		var messageReadAt sql.NullTime

		if err := rows.Scan(
			&summary.ID,
			&summary.Type,
			&summary.BuyerID,
			&summary.SellerID,
			&summary.ListingID,
			&summary.JobID,
			&summary.LastMessageAt,
			&summary.CreatedAt,
			&messageID,
			&messageConversationID,
			&messageSenderID,
			&messageContent,
			&messageStatus,
			&messageCreatedAt,
			&messageReadAt,
			&summary.UnreadCount,
		); err != nil {
			return nil, err
		}

		if messageID.Valid {
			lastMessage := &models.Message{
				ID:             messageID.Int64,
				ConversationID: messageConversationID.Int64,
				SenderID:       messageSenderID.Int64,
				Content:        messageContent.String,
				Status:         messageStatus.String,
				CreatedAt:      messageCreatedAt.Time,
			}
			if messageReadAt.Valid {
				readAt := messageReadAt.Time
				lastMessage.ReadAt = &readAt
			}
			summary.LastMessage = lastMessage
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *ConversationRepository) Touch(ctx context.Context, conversationID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE conversations
		SET last_message_at = NOW()
		WHERE id = $1
	`, conversationID)
	return err
}
