package services

import (
	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/models"
)

// Access rules for protected operations. These are pure decision
// functions over an already-verified principal; token verification itself
// happens in the auth middleware before any of them run.

// CanReadMessage permits the message detail read only to the sender or
// the recipient.
func CanReadMessage(principal string, msg *models.MessageDetail) error {
	if principal == msg.FromUser.Username || principal == msg.ToUser.Username {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanMarkRead permits marking a message read only to its recipient. The
// sender and third parties are rejected alike.
func CanMarkRead(principal string, msg *models.MessageDetail) error {
	if principal == msg.ToUser.Username {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanListMailbox permits listing a mailbox only to its owner.
func CanListMailbox(principal, owner string) error {
	if principal == owner {
		return nil
	}
	return apperrors.ErrForbidden
}
