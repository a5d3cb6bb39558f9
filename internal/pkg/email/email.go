package email

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Mailer defines the interface for outbound notification delivery.
// The dispatcher only persists Notification records; actual delivery is
// this collaborator's concern.
type Mailer interface {
	SendAssignmentNotice(toEmail, toName, eventName, message string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new Mailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) Mailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// SendAssignmentNotice emails an examiner about a new event assignment.
// When SMTP credentials are not configured the notice is logged instead,
// which is the intended behavior for development environments.
func (m *SMTPMailer) SendAssignmentNotice(toEmail, toName, eventName, message string) error {
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Info().
			Str("toEmail", toEmail).
			Str("eventName", eventName).
			Str("message", message).
			Msg("SMTP credentials not configured - assignment notice logged instead of sent")
		return nil
	}

	subject := fmt.Sprintf("New examination assignment: %s", eventName)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYou have been assigned to the examination event %q.\r\n\r\n%s\r\n\r\nPlease accept or decline the assignment in ExamSync.\r\n",
		toName, eventName, message,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.config.FromName, m.config.FromEmail, toEmail, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.FromEmail, []string{toEmail}, msg); err != nil {
		m.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send assignment notice")
		return fmt.Errorf("failed to send assignment notice: %w", err)
	}

	return nil
}
