package email

import (
	"context"
	"errors"
	"testing"

	"collabex_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer(t *testing.T) *NotificationComposer {
	t.Helper()
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)
	return NewNotificationComposer(tm, "CollabEx <notify@collabex.test>")
}

func TestDefaultTemplatesLoaded(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"collab_accepted", "collab_completed", "collab_interest", "collab_request", "generic", "layout",
	}, tm.TemplateNames())
}

func TestSubject(t *testing.T) {
	cases := map[models.NotificationType]string{
		models.NotificationCollabRequest:   "Ana wants to collaborate with you!",
		models.NotificationCollabAccepted:  "Ana accepted your collaboration request!",
		models.NotificationCollabCompleted: "Your collaboration with Ana is complete!",
		models.NotificationCollabInterest:  "Ana is interested in your collaboration!",
		models.NotificationType("other"):   "Fallback title",
	}
	for typ, want := range cases {
		assert.Equal(t, want, Subject(typ, "Ana", "Fallback title"), string(typ))
	}
}

func TestComposeRequestEmail(t *testing.T) {
	c := newComposer(t)

	msg, err := c.Compose(NotificationEmail{
		Type:       models.NotificationCollabRequest,
		To:         "brand@example.com",
		SenderName: "Ana",
		Title:      "New request",
		Message:    "Let's work on the spring campaign",
	})
	require.NoError(t, err)

	assert.Equal(t, "CollabEx <notify@collabex.test>", msg.From)
	assert.Equal(t, []string{"brand@example.com"}, msg.To)
	assert.Equal(t, "Ana wants to collaborate with you!", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<h2>New Collaboration Request</h2>")
	assert.Contains(t, msg.HTMLBody, "<strong>Ana</strong> has sent you a collaboration request.")
	assert.Contains(t, msg.HTMLBody, "Log in to your account to accept or decline this request.")
	assert.Contains(t, msg.HTMLBody, `<h1 style="margin: 0;">CollabEx</h1>`)
	assert.Contains(t, msg.HTMLBody, "This is an automated notification from CollabEx.")
	assert.Equal(t, "collab_request", msg.Category)
	assert.Equal(t, "Let's work on the spring campaign\n\nFrom: Ana\n\nThis is an automated notification from CollabEx.", msg.Body)
}

func TestSMTPMessageHeaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromEmail = "notify@collabex.test"
	p := NewSMTPProvider(cfg, nil)

	m := p.buildMessage(&Email{
		To:       []string{"brand@example.com"},
		ReplyTo:  "ana@example.com",
		Subject:  "Hi",
		HTMLBody: "<p>Hi</p>",
		Category: "collab_request",
	})
	assert.Equal(t, []string{"CollabEx <notify@collabex.test>"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("Reply-To"))
	assert.Equal(t, []string{"collab_request"}, m.GetHeader(CategoryHeader))
}

func TestComposeEscapesUserInput(t *testing.T) {
	c := newComposer(t)

	msg, err := c.Compose(NotificationEmail{
		Type:       models.NotificationCollabInterest,
		To:         "author@example.com",
		SenderName: "<script>x</script>",
		Message:    "Tom & Jerry",
	})
	require.NoError(t, err)

	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.HTMLBody, "&lt;script&gt;x&lt;/script&gt;")
	assert.Contains(t, msg.HTMLBody, "Tom &amp; Jerry")
	assert.Contains(t, msg.HTMLBody, "Someone's Interested!")
}

func TestComposeUnknownTypeUsesGenericBody(t *testing.T) {
	c := newComposer(t)

	msg, err := c.Compose(NotificationEmail{
		Type:    models.NotificationType("digest"),
		To:      "a@example.com",
		Title:   "Weekly digest",
		Message: "Three new posts",
	})
	require.NoError(t, err)
	assert.Equal(t, "Weekly digest", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<p>Three new posts</p>")
}

func TestComposeRequiresRecipient(t *testing.T) {
	c := newComposer(t)
	_, err := c.Compose(NotificationEmail{Type: models.NotificationCollabRequest})
	assert.Error(t, err)
}

func TestLogProviderRecordsMessages(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)
	p := NewLogProvider(tm)

	require.NoError(t, p.SendTemplate(context.Background(), []string{"x@example.com"}, "Hi", "generic", TemplateData{"Message": "hello"}))
	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hi", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "hello")

	p.FailWith(errors.New("smtp down"))
	assert.EqualError(t, p.Send(context.Background(), &Email{To: []string{"x@example.com"}}), "smtp down")
}

func TestSMTPProviderValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromEmail = "notify@collabex.test"
	assert.NoError(t, NewSMTPProvider(cfg, nil).Validate())
	assert.Equal(t, "CollabEx <notify@collabex.test>", cfg.FromAddress())

	cfg.Host = ""
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate())

	cfg = DefaultConfig()
	cfg.FromEmail = "a@b.c"
	cfg.Port = 0
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate())
}

func TestSMTPProviderBuildMessageDefaultsFrom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromEmail = "notify@collabex.test"
	p := NewSMTPProvider(cfg, nil)

	m := p.buildMessage(&Email{To: []string{"a@example.com"}, Subject: "s", HTMLBody: "<p>x</p>"})
	assert.Equal(t, []string{"CollabEx <notify@collabex.test>"}, m.GetHeader("From"))
	assert.Equal(t, []string{"a@example.com"}, m.GetHeader("To"))
}
