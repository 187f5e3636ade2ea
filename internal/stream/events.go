package stream

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

const (
	EventConnected   = "connected"
	EventNewMessages = "new_messages"
	EventInit        = "init"
	EventUpdate      = "update"
)

// Events are plain JSON frames distinguished by their "type" field; the
// wire keys follow the client contract rather than the storage models.
type MessageEvent struct {
	Type     string           `json:"type"`
	Messages []models.Message `json:"messages,omitempty"`
}

type NotificationEvent struct {
	Type        string                `json:"type"`
	UnreadCount int                   `json:"unreadCount"`
	Latest      []models.Notification `json:"latest,omitempty"`
}

// WriteEvent frames a payload as a server-sent-event data frame and
// flushes it. The flush error is the disconnect signal for the poll loops.
func WriteEvent(w *bufio.Writer, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", encoded); err != nil {
		return err
	}
	return w.Flush()
}

// WriteKeepAlive emits an SSE comment so idle connections still learn about
// a closed transport within one poll interval.
func WriteKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
