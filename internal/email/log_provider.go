package email

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"collabex_backend/internal/logger"
)

// LogProvider logs messages instead of sending them. It is used when email
// is disabled and keeps the sent messages for inspection.
type LogProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
	fail error
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail != nil {
		return p.fail
	}

	p.sent = append(p.sent, *email)
	logger.CtxInfo(ctx, "Email suppressed (email disabled)",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return p.Send(ctx, &Email{To: to, Subject: subject, HTMLBody: body})
}

func (p *LogProvider) Validate() error { return nil }
func (p *LogProvider) Close() error    { return nil }

// Sent returns a copy of the messages handed to Send.
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

// FailWith makes subsequent Send calls return err. Pass nil to reset.
func (p *LogProvider) FailWith(err error) {
	p.mu.Lock()
	p.fail = err
	p.mu.Unlock()
}
