package email

import (
	"fmt"
	"time"
)

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// DefaultConfig returns the default SMTP settings.
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:     "localhost",
		Port:     587,
		FromName: "CollabEx",
		UseTLS:   true,
		Timeout:  30 * time.Second,
	}
}

// FromAddress renders the From header, e.g. "CollabEx <notifications@collabex.app>".
func (c *SMTPConfig) FromAddress() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return fmt.Sprintf("%s <%s>", c.FromName, c.FromEmail)
}
