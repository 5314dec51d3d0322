package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

var ErrPayloadNotObject = errors.New("notification data must be a JSON object")

// NotificationPayload is the typed data attached to a notification.
// Each notification type has exactly one payload variant.
type NotificationPayload interface {
	NotificationType() NotificationType
}

type CollabRequestPayload struct {
	CollaborationID    string `json:"collaborationId,omitempty"`
	CollaborationTitle string `json:"collaborationTitle,omitempty"`
}

type CollabAcceptedPayload struct {
	CollaborationID    string `json:"collaborationId,omitempty"`
	CollaborationTitle string `json:"collaborationTitle,omitempty"`
}

type CollabCompletedPayload struct {
	CollaborationID    string `json:"collaborationId,omitempty"`
	CollaborationTitle string `json:"collaborationTitle,omitempty"`
}

type CollabInterestPayload struct {
	PostID    string `json:"postId,omitempty"`
	PostTitle string `json:"postTitle,omitempty"`
}

func (CollabRequestPayload) NotificationType() NotificationType   { return NotificationCollabRequest }
func (CollabAcceptedPayload) NotificationType() NotificationType  { return NotificationCollabAccepted }
func (CollabCompletedPayload) NotificationType() NotificationType { return NotificationCollabCompleted }
func (CollabInterestPayload) NotificationType() NotificationType  { return NotificationCollabInterest }

// NewPayload returns an empty variant for t.
func NewPayload(t NotificationType) (NotificationPayload, error) {
	switch t {
	case NotificationCollabRequest:
		return &CollabRequestPayload{}, nil
	case NotificationCollabAccepted:
		return &CollabAcceptedPayload{}, nil
	case NotificationCollabCompleted:
		return &CollabCompletedPayload{}, nil
	case NotificationCollabInterest:
		return &CollabInterestPayload{}, nil
	}
	return nil, fmt.Errorf("unknown notification type %q", t)
}

// DecodePayload reads raw JSON into the variant for t. Empty input yields
// the zero variant and anything other than an object is rejected. Known keys
// holding a value of the wrong type are dropped.
func DecodePayload(t NotificationType, raw []byte) (NotificationPayload, error) {
	payload, err := NewPayload(t)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return payload, nil
	}
	if trimmed[0] != '{' {
		return nil, ErrPayloadNotObject
	}
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(trimmed, payload); err != nil && !errors.As(err, &typeErr) {
		return nil, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return payload, nil
}

func EncodePayload(p NotificationPayload) (datatypes.JSON, error) {
	if p == nil {
		return datatypes.JSON("{}"), nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
