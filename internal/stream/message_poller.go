package stream

import (
	"context"
	"time"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type MessageSource interface {
	ListMessagesSince(ctx context.Context, conversationID int64, since time.Time, afterID int64) ([]models.Message, error)
	MarkMessagesDelivered(ctx context.Context, messageIDs []int64, recipientID int64) error
}

// MessagePoller carries the per-connection checkpoint for one conversation
// stream. Each connection owns exactly one poller; there is no shared
// state between connections. The checkpoint is the (created_at, id) pair
// of the newest message handed out, so a row committed with the same
// timestamp as an already-seen one is still picked up.
type MessagePoller struct {
	source         MessageSource
	conversationID int64
	viewerID       int64
	checkpoint     time.Time
	checkpointID   int64
}

func NewMessagePoller(
	source MessageSource,
	conversationID int64,
	viewerID int64,
	checkpoint time.Time,
) *MessagePoller {
	return &MessagePoller{
		source:         source,
		conversationID: conversationID,
		viewerID:       viewerID,
		checkpoint:     checkpoint,
	}
}

// Poll returns messages past the checkpoint and advances it to the newest
// observed (created_at, id) pair. Counterpart messages are marked delivered
// before they are handed to the caller. On error the checkpoint is left
// untouched.
func (p *MessagePoller) Poll(ctx context.Context) ([]models.Message, error) {
	messages, err := p.source.ListMessagesSince(ctx, p.conversationID, p.checkpoint, p.checkpointID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}

	inbound := make([]int64, 0, len(messages))
	for _, message := range messages {
		if message.SenderID != p.viewerID && message.Status == models.MessageStatusSent {
			inbound = append(inbound, message.ID)
		}
	}
	if len(inbound) > 0 {
		if err := p.source.MarkMessagesDelivered(ctx, inbound, p.viewerID); err != nil {
			return nil, err
		}
		for i := range messages {
			if messages[i].SenderID != p.viewerID && messages[i].Status == models.MessageStatusSent {
				messages[i].Status = models.MessageStatusDelivered
			}
		}
	}

	for _, message := range messages {
		if message.CreatedAt.After(p.checkpoint) ||
			(message.CreatedAt.Equal(p.checkpoint) && message.ID > p.checkpointID) {
			p.checkpoint = message.CreatedAt
			p.checkpointID = message.ID
		}
	}

	return messages, nil
}

// Checkpoint exposes the current boundary, mainly for tests.
func (p *MessagePoller) Checkpoint() (time.Time, int64) {
	return p.checkpoint, p.checkpointID
}
