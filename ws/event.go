package ws

import (
	"context"
	"encoding/json"
)

// Event types pushed to connected clients.
const (
	EventNotification = "notification"
	EventMessage      = "message"
)

// Event is the frame a client receives.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent marshals payload into an Event.
func NewEvent(eventType string, payload interface{}) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// Envelope addresses an event to one user across nodes.
type Envelope struct {
	UserID string `json:"user_id"`
	Event  Event  `json:"event"`
}

// Publisher pushes an event to every connection of a user. Delivery is
// at-most-once: offline users and full buffers drop the event.
type Publisher interface {
	Publish(ctx context.Context, userID string, event Event) error
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
