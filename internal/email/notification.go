package email

import (
	"fmt"
	"html/template"

	"collabex_backend/internal/models"
)

const (
	layoutTemplate  = "layout"
	genericTemplate = "generic"
)

// NotificationEmail carries the raw, unescaped fields of a notification
// email. Templates escape them on render.
type NotificationEmail struct {
	Type       models.NotificationType `json:"type"`
	To         string                  `json:"to"`
	SenderName string                  `json:"senderName"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
}

// Subject returns the subject line for a notification type. Unknown types
// fall back to the title.
func Subject(t models.NotificationType, senderName, title string) string {
	switch t {
	case models.NotificationCollabRequest:
		return fmt.Sprintf("%s wants to collaborate with you!", senderName)
	case models.NotificationCollabAccepted:
		return fmt.Sprintf("%s accepted your collaboration request!", senderName)
	case models.NotificationCollabCompleted:
		return fmt.Sprintf("Your collaboration with %s is complete!", senderName)
	case models.NotificationCollabInterest:
		return fmt.Sprintf("%s is interested in your collaboration!", senderName)
	default:
		return title
	}
}

// NotificationComposer turns a NotificationEmail into a branded HTML email.
type NotificationComposer struct {
	renderer TemplateRenderer
	from     string
}

func NewNotificationComposer(renderer TemplateRenderer, from string) *NotificationComposer {
	return &NotificationComposer{renderer: renderer, from: from}
}

// Compose renders the per-type body inside the layout.
func (c *NotificationComposer) Compose(n NotificationEmail) (*Email, error) {
	if n.To == "" {
		return nil, fmt.Errorf("notification email has no recipient")
	}

	name := string(n.Type)
	if tm, ok := c.renderer.(*TemplateManager); ok && !tm.HasTemplate(name) {
		name = genericTemplate
	}

	body, err := c.renderer.Render(name, TemplateData{
		"SenderName": n.SenderName,
		"Message":    n.Message,
		"Title":      n.Title,
	})
	if err != nil {
		return nil, err
	}

	html, err := c.renderer.Render(layoutTemplate, TemplateData{
		"Content": template.HTML(body),
	})
	if err != nil {
		return nil, err
	}

	return &Email{
		From:     c.from,
		To:       []string{n.To},
		Subject:  Subject(n.Type, n.SenderName, n.Title),
		Body:     plainText(n),
		HTMLBody: html,
		Category: string(n.Type),
	}, nil
}

// plainText is the text/plain alternative: the notification message and
// the sender, without markup.
func plainText(n NotificationEmail) string {
	if n.SenderName == "" {
		return n.Message
	}
	return fmt.Sprintf("%s\n\nFrom: %s\n\nThis is an automated notification from CollabEx.", n.Message, n.SenderName)
}
