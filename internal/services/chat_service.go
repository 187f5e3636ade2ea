package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karim-d/VentureLinkBack/internal/models"
	"github.com/karim-d/VentureLinkBack/internal/repository"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSelfConversation = errors.New("you cannot start a conversation with yourself")
	ErrSelfInteraction  = errors.New("you cannot perform this action on your own record")
	ErrListingNotFound  = errors.New("listing not found")
	ErrJobNotFound      = errors.New("job not found")
	ErrProfileNotFound  = errors.New("investor profile not found")
)

type listingReader interface {
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
}

type jobReader interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type notifier interface {
	Notify(ctx context.Context, userID int64, ntype string, title string, body *string, link *string) (*models.Notification, error)
}

type ChatService struct {
	db               *pgxpool.Pool
	conversationRepo *repository.ConversationRepository
	messageRepo      *repository.MessageRepository
	listingRepo      listingReader
	jobRepo          jobReader
	userRepo         userReader
	notifications    notifier
}

type ChatDelivery struct {
	Conversation *models.Conversation
	Message      *models.Message
	RecipientID  int64
}

func NewChatService(
	db *pgxpool.Pool,
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
	listingRepo listingReader,
	jobRepo jobReader,
	userRepo userReader,
	notifications notifier,
) *ChatService {
	return &ChatService{
		db:               db,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		listingRepo:      listingRepo,
		jobRepo:          jobRepo,
		userRepo:         userRepo,
		notifications:    notifications,
	}
}

func (s *ChatService) ListConversations(
	ctx context.Context,
	actorID int64,
) ([]models.ConversationSummary, error) {
	if actorID <= 0 {
		return nil, ErrForbidden
	}

	return s.conversationRepo.ListForParticipant(ctx, actorID)
}

// StartOrGetListingConversation resolves the listing owner as the seller
// and returns the existing pairing or creates it. The listing owner cannot
// open a conversation against their own listing; nothing is written in that
// case.
func (s *ChatService) StartOrGetListingConversation(
	ctx context.Context,
	actorID int64,
	listingID int64,
) (*models.Conversation, error) {
	if listingID <= 0 {
		return nil, ErrInvalidInput
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.OwnerID == actorID {
		return nil, ErrSelfConversation
	}

	conversation, created, err := s.conversationRepo.CreateOrGet(
		ctx,
		models.ConversationTypeListing,
		actorID,
		listing.OwnerID,
		&listing.ID,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if created {
		s.notifyChatInvitation(ctx, conversation, listing.Title)
	}

	return conversation, nil
}

func (s *ChatService) StartOrGetJobConversation(
	ctx context.Context,
	actorID int64,
	jobID int64,
) (*models.Conversation, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.OwnerID == actorID {
		return nil, ErrSelfConversation
	}

	conversation, created, err := s.conversationRepo.CreateOrGet(
		ctx,
		models.ConversationTypeJob,
		actorID,
		job.OwnerID,
		nil,
		&job.ID,
	)
	if err != nil {
		return nil, err
	}

	if created {
		s.notifyChatInvitation(ctx, conversation, job.Title)
	}

	return conversation, nil
}

func (s *ChatService) GetConversation(
	ctx context.Context,
	actorID int64,
	conversationID int64,
) (*models.Conversation, error) {
	if conversationID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID)
}

func (s *ChatService) ListMessages(
	ctx context.Context,
	actorID int64,
	conversationID int64,
	page int,
	limit int,
) ([]models.Message, int, error) {
	if conversationID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	if _, err := s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID); err != nil {
		return nil, 0, err
	}

	return s.messageRepo.ListByConversation(ctx, conversationID, limit, (page-1)*limit)
}

func (s *ChatService) SendMessage(
	ctx context.Context,
	actorID int64,
	conversationID int64,
	content string,
) (*ChatDelivery, error) {
	if conversationID <= 0 {
		return nil, ErrInvalidInput
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	recipientID := conversation.Recipient(actorID)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)
	txConversationRepo := repository.NewConversationRepository(tx)

	message, err := txMessageRepo.Create(ctx, conversationID, actorID, trimmed)
	if err != nil {
		return nil, err
	}

	if err := txConversationRepo.Touch(ctx, conversationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifyNewMessage(ctx, recipientID, actorID, conversationID, trimmed)

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
		RecipientID:  recipientID,
	}, nil
}

// MarkConversationRead transitions every counterpart message in the
// conversation to read. Idempotent.
func (s *ChatService) MarkConversationRead(
	ctx context.Context,
	actorID int64,
	conversationID int64,
) error {
	if conversationID <= 0 {
		return ErrInvalidInput
	}

	if _, err := s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrForbidden
		}
		return err
	}

	return s.messageRepo.MarkConversationRead(ctx, conversationID, actorID)
}

// ListMessagesSince feeds the polling bridge: messages past the
// (created_at, id) checkpoint, oldest first.
func (s *ChatService) ListMessagesSince(
	ctx context.Context,
	conversationID int64,
	since time.Time,
	afterID int64,
) ([]models.Message, error) {
	return s.messageRepo.ListNewSince(ctx, conversationID, since, afterID)
}

func (s *ChatService) MarkMessagesDelivered(
	ctx context.Context,
	messageIDs []int64,
	recipientID int64,
) error {
	return s.messageRepo.MarkDelivered(ctx, messageIDs, recipientID)
}

// Notification fan-out is best effort: a failed insert delays awareness but
// never rolls back the chat write that triggered it.
func (s *ChatService) notifyChatInvitation(ctx context.Context, conversation *models.Conversation, subject string) {
	link := fmt.Sprintf("/conversations/%d", conversation.ID)
	body := fmt.Sprintf("A buyer wants to talk about %q.", subject)
	if _, err := s.notifications.Notify(
		ctx,
		conversation.SellerID,
		models.NotificationTypeChatInvitation,
		"New conversation request",
		&body,
		&link,
	); err != nil {
		log.Printf("chat invitation notification: %v", err)
	}
}

func (s *ChatService) notifyNewMessage(ctx context.Context, recipientID, senderID, conversationID int64, content string) {
	title := "You have a new message"
	if sender, err := s.userRepo.GetByID(ctx, senderID); err == nil {
		title = fmt.Sprintf("New message from %s", sender.Email)
	}

	link := fmt.Sprintf("/conversations/%d", conversationID)
	excerpt := content
	if runes := []rune(excerpt); len(runes) > 80 {
		excerpt = string(runes[:80])
	}

	if _, err := s.notifications.Notify(
		ctx,
		recipientID,
		models.NotificationTypeNewMessage,
		title,
		&excerpt,
		&link,
	); err != nil {
		log.Printf("new message notification: %v", err)
	}
}
