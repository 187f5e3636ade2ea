package handlers

import (
	"bufio"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karim-d/VentureLinkBack/internal/models"
	"github.com/karim-d/VentureLinkBack/internal/services"
	"github.com/karim-d/VentureLinkBack/internal/stream"
	"github.com/valyala/fasthttp"
)

type messageStreamService interface {
	GetConversation(ctx context.Context, actorID int64, conversationID int64) (*models.Conversation, error)
	stream.MessageSource
}

// StreamHandler serves the long-lived SSE endpoints. Every connection gets
// its own poller; the loops below end when a write to the closed transport
// fails, which stops the ticker with them.
type StreamHandler struct {
	chat                messageStreamService
	notifications       stream.NotificationSource
	messagePollInterval time.Duration
	notifyPollInterval  time.Duration
}

func NewStreamHandler(
	chat messageStreamService,
	notifications stream.NotificationSource,
	messagePollInterval time.Duration,
	notifyPollInterval time.Duration,
) *StreamHandler {
	return &StreamHandler{
		chat:                chat,
		notifications:       notifications,
		messagePollInterval: messagePollInterval,
		notifyPollInterval:  notifyPollInterval,
	}
}

func (h *StreamHandler) StreamConversation(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	conversationID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || conversationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
	}

	// Participant check happens before the stream is established.
	if _, err := h.chat.GetConversation(c.Context(), actorID, conversationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open stream"})
	}

	setStreamHeaders(c)

	poller := stream.NewMessagePoller(h.chat, conversationID, actorID, time.Now().UTC())
	interval := h.messagePollInterval

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if err := stream.WriteEvent(w, stream.MessageEvent{Type: stream.EventConnected}); err != nil {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			messages, err := poller.Poll(context.Background())
			if err != nil {
				// Transient store failure; the next tick retries.
				continue
			}

			if len(messages) == 0 {
				if err := stream.WriteKeepAlive(w); err != nil {
					return
				}
				continue
			}

			if err := stream.WriteEvent(w, stream.MessageEvent{
				Type:     stream.EventNewMessages,
				Messages: messages,
			}); err != nil {
				return
			}
		}
	}))

	return nil
}

func (h *StreamHandler) StreamNotifications(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	setStreamHeaders(c)

	poller := stream.NewNotificationPoller(h.notifications, actorID)
	interval := h.notifyPollInterval

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		unreadCount, _, err := poller.Poll(context.Background())
		if err != nil {
			unreadCount = 0
		}
		if err := stream.WriteEvent(w, stream.NotificationEvent{
			Type:        stream.EventInit,
			UnreadCount: unreadCount,
		}); err != nil {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			unreadCount, latest, err := poller.Poll(context.Background())
			if err != nil {
				continue
			}

			if err := stream.WriteEvent(w, stream.NotificationEvent{
				Type:        stream.EventUpdate,
				UnreadCount: unreadCount,
				Latest:      latest,
			}); err != nil {
				return
			}
		}
	}))

	return nil
}

func setStreamHeaders(c *fiber.Ctx) {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")
}
