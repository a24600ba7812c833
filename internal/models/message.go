package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a directed, immutable-content communication between two users.
// ReadAt is nil until the recipient marks the message read.
type Message struct {
	ID           uuid.UUID  `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// MessageDetail is a message joined with both participants' public
// projections, as returned by the detail endpoint.
type MessageDetail struct {
	ID       uuid.UUID  `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser PublicUser `json:"from_user"`
	ToUser   PublicUser `json:"to_user"`
}

// SentMessage is a message as seen in the sender's outbox, with the
// recipient's projection attached.
type SentMessage struct {
	ID     uuid.UUID  `json:"id"`
	ToUser PublicUser `json:"to_user"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
}

// ReceivedMessage is a message as seen in the recipient's inbox, with the
// sender's projection attached.
type ReceivedMessage struct {
	ID       uuid.UUID  `json:"id"`
	FromUser PublicUser `json:"from_user"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
}
