package email

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider on top of gomail.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

// NewSMTPProvider builds an SMTP provider. Port 465 switches the dialer to implicit TLS.
func NewSMTPProvider(config *SMTPConfig, renderer TemplateRenderer) *SMTPProvider {
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPProvider{
		config:   config,
		dialer:   d,
		renderer: renderer,
	}
}

// Send delivers the message. From defaults to the configured sender.
func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	msg := p.buildMessage(email)
	if err := p.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendTemplate renders a template into the HTML body and sends it.
func (p *SMTPProvider) SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(ctx, &Email{To: to, Subject: subject, HTMLBody: htmlBody})
}

// Validate checks the SMTP settings.
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}

	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}

	return nil
}

// Close is a no-op: DialAndSend opens a connection per message.
func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromAddress()
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	if email.Category != "" {
		m.SetHeader(CategoryHeader, email.Category)
	}
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	return m
}
