package algorithms

import (
	"errors"
	"time"

	"collabex_backend/internal/models"
)

// Role is the actor's side of a collaboration.
type Role string

const (
	RoleNone      Role = ""
	RoleRequester Role = "requester"
	RoleRecipient Role = "recipient"
)

var (
	ErrNotParty          = errors.New("actor is not a party to the collaboration")
	ErrTerminalStatus    = errors.New("collaboration is in a terminal status")
	ErrIllegalTransition = errors.New("transition not allowed for this role")
)

// RoleOf tells which side profileID is on.
func RoleOf(c *models.Collaboration, profileID string) Role {
	switch {
	case profileID == "":
		return RoleNone
	case c.ProfileA == profileID:
		return RoleRequester
	case c.ProfileB == profileID:
		return RoleRecipient
	}
	return RoleNone
}

// AllowedTransitions lists the statuses role may move a collaboration to from status.
//
//	pending     + recipient -> in_progress, cancelled
//	pending     + requester -> cancelled
//	in_progress + any party -> completed
//	completed, cancelled    -> none
func AllowedTransitions(status models.CollaborationStatus, role Role) []models.CollaborationStatus {
	if role == RoleNone {
		return nil
	}

	switch status {
	case models.CollaborationStatusPending:
		if role == RoleRecipient {
			return []models.CollaborationStatus{
				models.CollaborationStatusInProgress,
				models.CollaborationStatusCancelled,
			}
		}
		return []models.CollaborationStatus{models.CollaborationStatusCancelled}
	case models.CollaborationStatusInProgress:
		return []models.CollaborationStatus{models.CollaborationStatusCompleted}
	}
	return nil
}

func CanTransition(status models.CollaborationStatus, role Role, target models.CollaborationStatus) bool {
	for _, s := range AllowedTransitions(status, role) {
		if s == target {
			return true
		}
	}
	return false
}

// Transition applies target to c on behalf of role and keeps CompletedAt in
// step with the status. It returns the previous status.
func Transition(c *models.Collaboration, role Role, target models.CollaborationStatus, now time.Time) (models.CollaborationStatus, error) {
	previous := c.Status

	if role == RoleNone {
		return previous, ErrNotParty
	}
	if previous.Terminal() {
		return previous, ErrTerminalStatus
	}
	if !CanTransition(previous, role, target) {
		return previous, ErrIllegalTransition
	}

	c.Status = target
	if target == models.CollaborationStatusCompleted {
		completedAt := now
		c.CompletedAt = &completedAt
	} else {
		c.CompletedAt = nil
	}
	return previous, nil
}

// TransitionNotice describes the notification a transition owes, if any.
type TransitionNotice struct {
	Type        models.NotificationType
	RecipientID string // profile id
}

// NoticeFor returns the notification owed after c moved from previous to its
// current status by actorProfileID.
func NoticeFor(c *models.Collaboration, previous models.CollaborationStatus, actorProfileID string) (TransitionNotice, bool) {
	switch {
	case previous == models.CollaborationStatusPending && c.Status == models.CollaborationStatusInProgress:
		return TransitionNotice{Type: models.NotificationCollabAccepted, RecipientID: c.ProfileA}, true
	case c.Status == models.CollaborationStatusCompleted && previous != models.CollaborationStatusCompleted:
		return TransitionNotice{Type: models.NotificationCollabCompleted, RecipientID: c.Partner(actorProfileID)}, true
	}
	return TransitionNotice{}, false
}

// CanReview reports whether role may leave a review for the other party.
func CanReview(c *models.Collaboration, role Role) bool {
	return role != RoleNone && c.Status == models.CollaborationStatusCompleted
}
