package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karim-d/VentureLinkBack/internal/models"
)

type fakeMessageSource struct {
	messages     []models.Message
	listErr      error
	deliveredIDs []int64
	deliveredFor int64
}

func (f *fakeMessageSource) ListMessagesSince(_ context.Context, _ int64, since time.Time, afterID int64) ([]models.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	newer := make([]models.Message, 0)
	for _, message := range f.messages {
		if message.CreatedAt.After(since) ||
			(message.CreatedAt.Equal(since) && message.ID > afterID) {
			newer = append(newer, message)
		}
	}
	return newer, nil
}

func (f *fakeMessageSource) MarkMessagesDelivered(_ context.Context, messageIDs []int64, recipientID int64) error {
	f.deliveredIDs = append(f.deliveredIDs, messageIDs...)
	f.deliveredFor = recipientID
	for i := range f.messages {
		for _, id := range messageIDs {
			if f.messages[i].ID == id && f.messages[i].Status == models.MessageStatusSent {
				f.messages[i].Status = models.MessageStatusDelivered
			}
		}
	}
	return nil
}

func buildMessage(id int64, senderID int64, createdAt time.Time) models.Message {
	return models.Message{
		ID:             id,
		ConversationID: 1,
		SenderID:       senderID,
		Content:        "hello",
		Status:         models.MessageStatusSent,
		CreatedAt:      createdAt,
	}
}

func TestPollDeliversOnlyRowsAfterCheckpoint(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeMessageSource{
		messages: []models.Message{
			buildMessage(1, 7, start.Add(-time.Minute)),
			buildMessage(2, 7, start.Add(time.Second)),
		},
	}
	poller := NewMessagePoller(source, 1, 42, start)

	messages, err := poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(messages) != 1 || messages[0].ID != 2 {
		t.Fatalf("expected only message 2, got %+v", messages)
	}
}

func TestPollAdvancesCheckpointToMaxObservedPair(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	newest := start.Add(3 * time.Second)
	source := &fakeMessageSource{
		messages: []models.Message{
			buildMessage(1, 7, start.Add(time.Second)),
			buildMessage(2, 7, newest),
		},
	}
	poller := NewMessagePoller(source, 1, 42, start)

	if _, err := poller.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if ts, id := poller.Checkpoint(); !ts.Equal(newest) || id != 2 {
		t.Fatalf("expected checkpoint (%v, 2), got (%v, %d)", newest, ts, id)
	}

	// The next tick must not re-deliver anything.
	messages, err := poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no re-delivery, got %+v", messages)
	}
}

func TestPollPicksUpRowCommittedAtCheckpointTimestamp(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ts := start.Add(time.Second)
	source := &fakeMessageSource{
		messages: []models.Message{buildMessage(1, 7, ts)},
	}
	poller := NewMessagePoller(source, 1, 42, start)

	if _, err := poller.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	// A row committed after the first poll but carrying the same
	// created_at as the checkpoint must still be delivered.
	source.messages = append(source.messages, buildMessage(2, 7, ts))

	messages, err := poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != 2 {
		t.Fatalf("expected late message 2, got %+v", messages)
	}

	// And only once.
	messages, err = poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no re-delivery, got %+v", messages)
	}
}

func TestPollEmptyTickLeavesCheckpointUntouched(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	poller := NewMessagePoller(&fakeMessageSource{}, 1, 42, start)

	messages, err := poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %+v", messages)
	}
	if ts, _ := poller.Checkpoint(); !ts.Equal(start) {
		t.Fatalf("expected checkpoint %v, got %v", start, ts)
	}
}

func TestPollErrorLeavesCheckpointUntouched(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeMessageSource{listErr: errors.New("connection reset")}
	poller := NewMessagePoller(source, 1, 42, start)

	if _, err := poller.Poll(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}
	if ts, _ := poller.Checkpoint(); !ts.Equal(start) {
		t.Fatalf("expected checkpoint %v, got %v", start, ts)
	}

	// Recovery on the next tick picks up everything since the old checkpoint.
	source.listErr = nil
	source.messages = []models.Message{buildMessage(1, 7, start.Add(time.Second))}

	messages, err := poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll after recovery: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != 1 {
		t.Fatalf("expected message 1 after recovery, got %+v", messages)
	}
}

func TestPollMarksInboundMessagesDelivered(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeMessageSource{
		messages: []models.Message{
			buildMessage(1, 7, start.Add(time.Second)),  // from the counterpart
			buildMessage(2, 42, start.Add(time.Second)), // the viewer's own
		},
	}
	poller := NewMessagePoller(source, 1, 42, start)

	messages, err := poller.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(source.deliveredIDs) != 1 || source.deliveredIDs[0] != 1 {
		t.Fatalf("expected only message 1 marked delivered, got %v", source.deliveredIDs)
	}
	if source.deliveredFor != 42 {
		t.Fatalf("expected delivery recorded for viewer 42, got %d", source.deliveredFor)
	}

	for _, message := range messages {
		switch message.ID {
		case 1:
			if message.Status != models.MessageStatusDelivered {
				t.Fatalf("expected inbound message delivered, got %q", message.Status)
			}
		case 2:
			if message.Status != models.MessageStatusSent {
				t.Fatalf("expected own message left as sent, got %q", message.Status)
			}
		}
	}
}
