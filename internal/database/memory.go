package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/models"
)

// MemoryStore is a mutex-guarded in-memory Store used by tests and local
// development without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	messages map[uuid.UUID]*models.Message
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		messages: make(map[uuid.UUID]*models.Message),
	}
}

func (s *MemoryStore) InsertUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return apperrors.ErrUsernameTaken
	}
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *MemoryStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemoryStore) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[username]; ok {
		user.LastLoginAt = at
	}
	return nil
}

func (s *MemoryStore) ListUsersOrdered(ctx context.Context) ([]models.PublicUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.PublicUser, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Public())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].LastName != users[j].LastName {
			return users[i].LastName < users[j].LastName
		}
		return users[i].FirstName < users[j].FirstName
	})
	return users, nil
}

func (s *MemoryStore) InsertMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := *msg
	s.messages[msg.ID] = &m
	return nil
}

func (s *MemoryStore) FindMessageByID(ctx context.Context, id uuid.UUID) (*models.MessageDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	from, ok := s.users[msg.FromUsername]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	to, ok := s.users[msg.ToUsername]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	return &models.MessageDetail{
		ID:       msg.ID,
		Body:     msg.Body,
		SentAt:   msg.SentAt,
		ReadAt:   copyTime(msg.ReadAt),
		FromUser: from.Public(),
		ToUser:   to.Public(),
	}, nil
}

func (s *MemoryStore) ListMessagesFromUser(ctx context.Context, username string) ([]models.SentMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := []models.SentMessage{}
	for _, msg := range s.messages {
		if msg.FromUsername != username {
			continue
		}
		to, ok := s.users[msg.ToUsername]
		if !ok {
			continue
		}
		messages = append(messages, models.SentMessage{
			ID:     msg.ID,
			ToUser: to.Public(),
			Body:   msg.Body,
			SentAt: msg.SentAt,
			ReadAt: copyTime(msg.ReadAt),
		})
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].SentAt.Before(messages[j].SentAt)
	})
	return messages, nil
}

func (s *MemoryStore) ListMessagesToUser(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := []models.ReceivedMessage{}
	for _, msg := range s.messages {
		if msg.ToUsername != username {
			continue
		}
		from, ok := s.users[msg.FromUsername]
		if !ok {
			continue
		}
		messages = append(messages, models.ReceivedMessage{
			ID:       msg.ID,
			FromUser: from.Public(),
			Body:     msg.Body,
			SentAt:   msg.SentAt,
			ReadAt:   copyTime(msg.ReadAt),
		})
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].SentAt.Before(messages[j].SentAt)
	})
	return messages, nil
}

func (s *MemoryStore) MarkMessageRead(ctx context.Context, id uuid.UUID, at time.Time) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return time.Time{}, apperrors.ErrMessageNotFound
	}
	if msg.ReadAt != nil {
		return *msg.ReadAt, nil
	}
	t := at
	msg.ReadAt = &t
	return t, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
