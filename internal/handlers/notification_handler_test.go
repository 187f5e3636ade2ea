package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karim-d/VentureLinkBack/internal/models"
)

type stubNotificationService struct {
	inboxResult        []models.Notification
	inboxTotal         int
	inboxErr           error
	unreadCount        int
	markReadErr        error
	markAllReadErr     error
	lastActorID        int64
	lastNotificationID int64
	markAllReadCalled  bool
}

func (s *stubNotificationService) ListInbox(_ context.Context, actorID int64, page int, limit int) ([]models.Notification, int, error) {
	s.lastActorID = actorID
	return s.inboxResult, s.inboxTotal, s.inboxErr
}

func (s *stubNotificationService) MarkRead(_ context.Context, actorID int64, notificationID int64) error {
	s.lastActorID = actorID
	s.lastNotificationID = notificationID
	return s.markReadErr
}

func (s *stubNotificationService) MarkAllRead(_ context.Context, actorID int64) error {
	s.lastActorID = actorID
	s.markAllReadCalled = true
	return s.markAllReadErr
}

func (s *stubNotificationService) UnreadCount(_ context.Context, userID int64) (int, error) {
	return s.unreadCount, nil
}

func newNotificationTestApp(service *stubNotificationService, actorID string) *fiber.App {
	handler := NewNotificationHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", actorID)
		c.Locals("role", "user")
		return c.Next()
	})
	app.Get("/api/v1/notifications", handler.ListNotifications)
	app.Post("/api/v1/notifications/read-all", handler.MarkAllRead)
	app.Post("/api/v1/notifications/:id/read", handler.MarkRead)
	return app
}

func TestListNotificationsIncludesUnreadCount(t *testing.T) {
	body := "Anna sent you a message"
	service := &stubNotificationService{
		inboxResult: []models.Notification{
			{
				ID:        4,
				UserID:    42,
				Type:      models.NotificationTypeNewMessage,
				Title:     "New message",
				Body:      &body,
				CreatedAt: time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
			},
		},
		inboxTotal:  1,
		unreadCount: 3,
	}
	app := newNotificationTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 {
		t.Fatalf("expected actor 42, got %d", service.lastActorID)
	}

	var payload struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unread_count"`
		Pagination    models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(payload.Notifications) != 1 || payload.UnreadCount != 3 {
		t.Fatalf("unexpected payload: %+v unread=%d", payload.Notifications, payload.UnreadCount)
	}
	if payload.Notifications[0].Type != models.NotificationTypeNewMessage {
		t.Fatalf("unexpected notification type: %q", payload.Notifications[0].Type)
	}
}

func TestMarkNotificationReadAlwaysSucceeds(t *testing.T) {
	service := &stubNotificationService{}
	app := newNotificationTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/9/read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 || service.lastNotificationID != 9 {
		t.Fatalf("unexpected forwarded args: actor=%d notification=%d", service.lastActorID, service.lastNotificationID)
	}

	var payload struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !payload.Success {
		t.Fatal("expected success response")
	}
}

func TestMarkNotificationReadRejectsInvalidID(t *testing.T) {
	service := &stubNotificationService{}
	app := newNotificationTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/abc/read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.lastNotificationID != 0 {
		t.Fatal("service should not have been called")
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	service := &stubNotificationService{}
	app := newNotificationTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !service.markAllReadCalled || service.lastActorID != 42 {
		t.Fatalf("expected MarkAllRead for actor 42, called=%v actor=%d", service.markAllReadCalled, service.lastActorID)
	}
}
