package email

import (
	"fmt"
	"net/smtp"
)

// Service sends notification emails via SMTP.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// Config holds SMTP connection settings.
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// NewService creates an SMTP-backed mail service.
func NewService(cfg Config) *Service {
	return &Service{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: cfg.FromEmail,
	}
}

// IsConfigured reports whether the service has enough settings to send.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.fromEmail != ""
}

// SendPlainText sends a plain-text email to a single recipient.
func (s *Service) SendPlainText(to, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
