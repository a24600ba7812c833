package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/database"
	"github.com/messagely/messagely-backend/internal/models"
	"github.com/messagely/messagely-backend/pkg/utils"
)

// UserService owns the user lifecycle: registration, credential checks and
// directory lookups. Password hashes never leave this layer.
type UserService struct {
	store database.Store
}

// NewUserService builds a UserService on the given store.
func NewUserService(store database.Store) *UserService {
	return &UserService{store: store}
}

// RegisterParams carries the fields accepted at registration.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register hashes the password and persists a new user. Returns
// apperrors.ErrUsernameTaken when the username is already in use. The
// returned record is the public projection; the hash stays internal.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.PublicUser, error) {
	hash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Username:     utils.NormalizeUsername(params.Username),
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		JoinedAt:     now,
		LastLoginAt:  now,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

// Authenticate reports whether the username/password pair is valid. An
// unknown username is an ordinary false, not a distinct error, so callers
// cannot probe for account existence.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.store.FindUserByUsername(ctx, utils.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return utils.VerifyPassword(password, user.PasswordHash), nil
}

// TouchLogin sets the user's last_login_at to now.
func (s *UserService) TouchLogin(ctx context.Context, username string) error {
	return s.store.UpdateLastLogin(ctx, utils.NormalizeUsername(username), time.Now())
}

// TouchLoginAsync updates last_login_at without blocking the caller. The
// login/register response must not wait on, or fail because of, this
// bookkeeping write; a dropped update is tolerable.
func (s *UserService) TouchLoginAsync(username string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.TouchLogin(ctx, username); err != nil {
			log.Printf("Warning: failed to update last login for %s: %v", username, err)
		}
	}()
}

// Get returns the full public record for username, or
// apperrors.ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.store.FindUserByUsername(ctx, utils.NormalizeUsername(username))
}

// List returns public projections of all users ordered by
// (last name, first name).
func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	return s.store.ListUsersOrdered(ctx)
}
