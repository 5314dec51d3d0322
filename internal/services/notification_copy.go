package services

import (
	"fmt"

	"collabex_backend/internal/models"
)

const (
	defaultSenderName   = "A user"
	defaultInfluencer   = "An influencer"
	maxNotificationText = 1000
	maxTitleText        = 200
	maxSenderText       = 100
)

// senderName is the display name used in notifications, with a fallback.
func senderName(p *models.Profile, fallback string) string {
	if p == nil || p.DisplayName == "" {
		return fallback
	}
	return truncate(p.DisplayName, maxSenderText)
}

// notificationCopy returns the title and message for an in-app notification
// about subject (a collaboration or post title).
func notificationCopy(t models.NotificationType, sender, subject string) (string, string) {
	var title, message string
	switch t {
	case models.NotificationCollabRequest:
		title = "New Collaboration Request"
		message = fmt.Sprintf("%s wants to collaborate with you: \"%s\"", sender, subject)
	case models.NotificationCollabAccepted:
		title = "Collaboration Accepted!"
		message = fmt.Sprintf("%s accepted your collaboration request: \"%s\"", sender, subject)
	case models.NotificationCollabCompleted:
		title = "Collaboration Completed"
		message = fmt.Sprintf("Your collaboration \"%s\" with %s is complete", subject, sender)
	case models.NotificationCollabInterest:
		title = "Someone's Interested!"
		message = fmt.Sprintf("%s is interested in your collab: \"%s\"", sender, subject)
	default:
		title = subject
		message = subject
	}
	return truncate(title, maxTitleText), truncate(message, maxNotificationText)
}

// truncate cuts s to at most max UTF-16 code units without splitting a rune.
func truncate(s string, max int) string {
	units := 0
	for i, r := range s {
		n := 1
		if r >= 0x10000 {
			n = 2
		}
		if units+n > max {
			return s[:i]
		}
		units += n
	}
	return s
}
