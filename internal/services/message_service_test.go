package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/database"
	"github.com/messagely/messagely-backend/internal/models"
)

// seedMessageUsers inserts users directly so message tests skip the
// hashing cost.
func seedMessageUsers(t *testing.T, store database.Store, usernames ...string) {
	t.Helper()
	now := time.Now()
	for _, username := range usernames {
		err := store.InsertUser(context.Background(), &models.User{
			Username:     username,
			PasswordHash: "x",
			FirstName:    "First-" + username,
			LastName:     "Last-" + username,
			JoinedAt:     now,
			LastLoginAt:  now,
		})
		require.NoError(t, err)
	}
}

func TestMessageService_CreateAndGet(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMessageService(store)
	ctx := context.Background()
	seedMessageUsers(t, store, "alice", "bob")

	msg, err := svc.Create(ctx, "alice", "bob", "hi bob")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, "alice", msg.FromUsername)
	assert.Equal(t, "bob", msg.ToUsername)
	assert.False(t, msg.SentAt.IsZero())
	assert.Nil(t, msg.ReadAt)

	detail, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.FromUser.Username)
	assert.Equal(t, "bob", detail.ToUser.Username)
	assert.Equal(t, "hi bob", detail.Body)
	assert.Nil(t, detail.ReadAt)
}

func TestMessageService_Create_UnknownParticipants(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMessageService(store)
	ctx := context.Background()
	seedMessageUsers(t, store, "alice")

	_, err := svc.Create(ctx, "alice", "nobody", "hello?")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = svc.Create(ctx, "nobody", "alice", "hello?")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestMessageService_SelfMessage(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMessageService(store)
	seedMessageUsers(t, store, "alice")

	msg, err := svc.Create(context.Background(), "alice", "alice", "note to self")
	require.NoError(t, err)
	assert.Equal(t, msg.FromUsername, msg.ToUsername)
}

func TestMessageService_ListFromAndTo(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMessageService(store)
	ctx := context.Background()
	seedMessageUsers(t, store, "alice", "bob", "carol")

	m1, err := svc.Create(ctx, "alice", "bob", "hi bob")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "carol", "bob", "hi from carol")
	require.NoError(t, err)

	sent, err := svc.ListFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, m1.ID, sent[0].ID)
	assert.Equal(t, "bob", sent[0].ToUser.Username)

	received, err := svc.ListTo(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "alice", received[0].FromUser.Username)
	assert.Equal(t, "carol", received[1].FromUser.Username)

	empty, err := svc.ListFrom(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMessageService_ListFor(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMessageService(store)
	ctx := context.Background()
	seedMessageUsers(t, store, "alice", "bob")

	_, err := svc.Create(ctx, "alice", "bob", "out")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "alice", "in")
	require.NoError(t, err)

	mailbox, err := svc.ListFor(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mailbox.Sent, 1)
	require.Len(t, mailbox.Received, 1)
	assert.Equal(t, "out", mailbox.Sent[0].Body)
	assert.Equal(t, "in", mailbox.Received[0].Body)
}

func TestMessageService_MarkRead(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMessageService(store)
	ctx := context.Background()
	seedMessageUsers(t, store, "alice", "bob")

	msg, err := svc.Create(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	first, err := svc.MarkRead(ctx, msg.ID)
	require.NoError(t, err)
	assert.False(t, first.IsZero())

	// Second call is a no-op returning the original timestamp.
	second, err := svc.MarkRead(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	detail, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.ReadAt)
	assert.True(t, first.Equal(*detail.ReadAt))
}

func TestMessageService_MarkRead_Unknown(t *testing.T) {
	svc := NewMessageService(database.NewMemoryStore())

	_, err := svc.MarkRead(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrMessageNotFound)
}
