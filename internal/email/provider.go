package email

import "context"

// Provider sends email messages.
type Provider interface {
	// Send delivers a fully composed message.
	Send(ctx context.Context, email *Email) error

	// SendTemplate renders templateName with data into the HTML body and sends it.
	SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	Close() error
}

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
