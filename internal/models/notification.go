package models

import "time"

const (
	NotificationTypeNewMessage     = "new_message"
	NotificationTypeJobApplication = "job_application"
	NotificationTypeFavoriteAdded  = "favorite_added"
	NotificationTypeChatInvitation = "chat_invitation"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      *string   `json:"body,omitempty"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
