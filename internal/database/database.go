// Package database holds the persistence collaborator for the user directory
// and the message ledger: the Store contract plus its Postgres and in-memory
// implementations.
package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/messagely/messagely-backend/internal/models"
)

// Store is the persistence surface the services depend on. Implementations
// return apperrors sentinels for absent or conflicting records so callers
// can branch with errors.Is.
type Store interface {
	// InsertUser persists a new user. Returns apperrors.ErrUsernameTaken
	// when the username already exists.
	InsertUser(ctx context.Context, user *models.User) error

	// FindUserByUsername returns the full record, including the password
	// hash. Returns apperrors.ErrUserNotFound when absent.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateLastLogin sets the user's last_login_at. A missing user is not
	// an error; the update simply affects no rows.
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error

	// ListUsersOrdered returns public projections of all users ordered by
	// (last name, first name) ascending.
	ListUsersOrdered(ctx context.Context) ([]models.PublicUser, error)

	// InsertMessage persists a new message. Both usernames must already be
	// validated by the caller.
	InsertMessage(ctx context.Context, msg *models.Message) error

	// FindMessageByID returns the message joined with both participants'
	// public projections. Returns apperrors.ErrMessageNotFound when absent.
	FindMessageByID(ctx context.Context, id uuid.UUID) (*models.MessageDetail, error)

	// ListMessagesFromUser returns messages sent by username, each joined
	// with the recipient's public projection, oldest first.
	ListMessagesFromUser(ctx context.Context, username string) ([]models.SentMessage, error)

	// ListMessagesToUser returns messages received by username, each joined
	// with the sender's public projection, oldest first.
	ListMessagesToUser(ctx context.Context, username string) ([]models.ReceivedMessage, error)

	// MarkMessageRead sets read_at to at only when it is currently null and
	// returns the effective read_at, so a repeated call is a no-op that
	// reports the original timestamp. Returns apperrors.ErrMessageNotFound
	// when the id is unknown.
	MarkMessageRead(ctx context.Context, id uuid.UUID, at time.Time) (time.Time, error)
}
