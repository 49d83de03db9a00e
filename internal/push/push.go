// Package push delivers real-time events to connected users. A Channel is a
// per-user topic: publishers address a user ID, subscribers receive whatever
// is published for that user while subscribed. Delivery is best-effort; the
// durable copy of every event lives in the database.
package push

import (
	"context"

	"github.com/google/uuid"
)

// Event types carried over a Channel.
const (
	EventNotification   = "notification"
	EventStatusChange   = "status_change"
	EventSessionStarted = "session_started"
	EventSessionEnded   = "session_ended"
)

type Message struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

type Channel interface {
	// Publish sends msg to every current subscriber of userID. Publishing to
	// a user with no subscribers is not an error.
	Publish(ctx context.Context, userID uuid.UUID, msg Message) error
	// Subscribe returns a stream of messages addressed to userID and a cancel
	// func that releases the subscription. The stream is closed on cancel.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan Message, func(), error)
}
