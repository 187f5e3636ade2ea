package models

import "time"

const (
	ConversationTypeListing    = "listing"
	ConversationTypeInvestment = "investment"
	ConversationTypeJob        = "job"
)

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

type Conversation struct {
	ID            int64      `json:"id"`
	Type          string     `json:"type"`
	BuyerID       int64      `json:"buyer_id"`
	SellerID      int64      `json:"seller_id"`
	ListingID     *int64     `json:"listing_id,omitempty"`
	JobID         *int64     `json:"job_id,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Content        string     `json:"content"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

type ConversationSummary struct {
	Conversation
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}

// Recipient returns the participant on the other side of the conversation.
func (c *Conversation) Recipient(actorID int64) int64 {
	if actorID == c.BuyerID {
		return c.SellerID
	}
	return c.BuyerID
}
