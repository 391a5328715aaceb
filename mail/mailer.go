package mail

import (
	"fmt"
	"net/smtp"

	"go-bank-simulator/config"
	"go-bank-simulator/logger"
)

// Mailer delivers a plain-text message to a single recipient. The concrete
// transport is an implementation detail; callers treat delivery failures as
// non-fatal and never retry.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a standard SMTP relay using the credentials
// from the loaded configuration.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPMailer() *SMTPMailer {
	cfg := config.AppConfig.SMTP
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.Log.WithField("to", to).Info("Email sent successfully")
	return nil
}
