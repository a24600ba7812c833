package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/database"
)

func registerTestUser(t *testing.T, svc *UserService, username, password, first, last string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterParams{
		Username:  username,
		Password:  password,
		FirstName: first,
		LastName:  last,
		Phone:     "555-0100",
	})
	require.NoError(t, err)
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(database.NewMemoryStore())
	ctx := context.Background()

	registerTestUser(t, svc, "alice", "hunter2passwd", "Alice", "Anders")

	ok, err := svc.Authenticate(ctx, "alice", "hunter2passwd")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Authenticate(ctx, "alice", "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown user is an ordinary false, not a distinguishable error.
	ok, err = svc.Authenticate(ctx, "nobody", "hunter2passwd")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserService_Register_ReturnsPublicProjection(t *testing.T) {
	svc := NewUserService(database.NewMemoryStore())

	pub, err := svc.Register(context.Background(), RegisterParams{
		Username:  "Alice",
		Password:  "hunter2passwd",
		FirstName: "Alice",
		LastName:  "Anders",
		Phone:     "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", pub.Username, "username is normalized at registration")
	assert.Equal(t, "Alice", pub.FirstName)
	assert.Equal(t, "Anders", pub.LastName)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc := NewUserService(database.NewMemoryStore())
	ctx := context.Background()

	registerTestUser(t, svc, "alice", "hunter2passwd", "Alice", "Anders")

	_, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "other-password"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	// No second record was created.
	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_GetAndList(t *testing.T) {
	svc := NewUserService(database.NewMemoryStore())
	ctx := context.Background()

	registerTestUser(t, svc, "carol", "carolpassword", "Carol", "Zimmer")
	registerTestUser(t, svc, "bob", "bobspassword1", "Bob", "Anders")
	registerTestUser(t, svc, "alice", "hunter2passwd", "Alice", "Anders")

	user, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)
	assert.False(t, user.JoinedAt.IsZero())
	assert.False(t, user.LastLoginAt.IsZero())

	_, err = svc.Get(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Ordered by (last name, first name) ascending.
	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)
}

func TestUserService_TouchLogin(t *testing.T) {
	svc := NewUserService(database.NewMemoryStore())
	ctx := context.Background()

	registerTestUser(t, svc, "alice", "hunter2passwd", "Alice", "Anders")

	before, err := svc.Get(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.TouchLogin(ctx, "alice"))

	after, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, after.LastLoginAt.Before(before.LastLoginAt))

	// Touching an unknown user is a silent no-op.
	assert.NoError(t, svc.TouchLogin(ctx, "nobody"))
}
