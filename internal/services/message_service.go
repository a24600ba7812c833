package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/messagely/messagely-backend/internal/database"
	"github.com/messagely/messagely-backend/internal/models"
	"github.com/messagely/messagely-backend/pkg/utils"
)

// MessageService owns the message lifecycle. Message bodies are opaque
// text; the service never inspects or transforms them.
type MessageService struct {
	store database.Store
}

// NewMessageService builds a MessageService on the given store.
func NewMessageService(store database.Store) *MessageService {
	return &MessageService{store: store}
}

// Create persists a new message from one user to another. Both usernames
// must resolve in the directory; an unknown one yields
// apperrors.ErrUserNotFound. Sender and recipient may coincide.
func (s *MessageService) Create(ctx context.Context, fromUsername, toUsername, body string) (*models.Message, error) {
	from := utils.NormalizeUsername(fromUsername)
	to := utils.NormalizeUsername(toUsername)

	if _, err := s.store.FindUserByUsername(ctx, from); err != nil {
		return nil, err
	}
	if _, err := s.store.FindUserByUsername(ctx, to); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:           uuid.New(),
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now(),
	}
	if err := s.store.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Get returns the message joined with both participants' public
// projections, or apperrors.ErrMessageNotFound.
func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*models.MessageDetail, error) {
	return s.store.FindMessageByID(ctx, id)
}

// ListFrom returns all messages sent by username, each with the
// recipient's public projection.
func (s *MessageService) ListFrom(ctx context.Context, username string) ([]models.SentMessage, error) {
	return s.store.ListMessagesFromUser(ctx, utils.NormalizeUsername(username))
}

// ListTo returns all messages received by username, each with the
// sender's public projection.
func (s *MessageService) ListTo(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	return s.store.ListMessagesToUser(ctx, utils.NormalizeUsername(username))
}

// Mailbox bundles a user's sent and received messages.
type Mailbox struct {
	Sent     []models.SentMessage     `json:"sent"`
	Received []models.ReceivedMessage `json:"received"`
}

// ListFor returns the mailbox of username: everything they sent and
// everything they received. The message listing endpoint is scoped to the
// caller; there is no unfiltered all-messages view.
func (s *MessageService) ListFor(ctx context.Context, username string) (*Mailbox, error) {
	sent, err := s.ListFrom(ctx, username)
	if err != nil {
		return nil, err
	}
	received, err := s.ListTo(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Mailbox{Sent: sent, Received: received}, nil
}

// MarkRead sets the message's read timestamp. The write is conditional on
// read_at being null, so the first call wins and repeated calls are
// no-ops returning the original timestamp.
func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) (time.Time, error) {
	return s.store.MarkMessageRead(ctx, id, time.Now())
}
