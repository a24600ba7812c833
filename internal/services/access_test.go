package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/models"
)

func aliceToBob() *models.MessageDetail {
	return &models.MessageDetail{
		FromUser: models.PublicUser{Username: "alice"},
		ToUser:   models.PublicUser{Username: "bob"},
	}
}

func TestCanReadMessage(t *testing.T) {
	msg := aliceToBob()

	assert.NoError(t, CanReadMessage("alice", msg))
	assert.NoError(t, CanReadMessage("bob", msg))
	assert.ErrorIs(t, CanReadMessage("carol", msg), apperrors.ErrForbidden)
	assert.ErrorIs(t, CanReadMessage("", msg), apperrors.ErrForbidden)
}

func TestCanMarkRead(t *testing.T) {
	msg := aliceToBob()

	assert.NoError(t, CanMarkRead("bob", msg))
	assert.ErrorIs(t, CanMarkRead("alice", msg), apperrors.ErrForbidden, "sender may not mark read")
	assert.ErrorIs(t, CanMarkRead("carol", msg), apperrors.ErrForbidden)
}

func TestCanListMailbox(t *testing.T) {
	assert.NoError(t, CanListMailbox("alice", "alice"))
	assert.ErrorIs(t, CanListMailbox("alice", "bob"), apperrors.ErrForbidden)
}
