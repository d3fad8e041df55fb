// Package mail provides domain.Mailer implementations: an SMTP sender for
// deployments and a log-backed sender for development, where messages are
// written to the application log instead of being delivered.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// LogMailer writes messages to the log instead of delivering them. It is
// used when SMTP is not configured, so local flows (including verification
// links) remain exercisable from the console.
type LogMailer struct{}

// Send implements domain.Mailer. It always reports success.
func (LogMailer) Send(_ context.Context, kind domain.MailKind, to, name, link string) bool {
	subject, body := composeMessage(kind, name, link)
	slog.Info("outbound mail (log mode)",
		"kind", string(kind),
		"to", to,
		"subject", subject,
		"body", body,
	)
	return true
}

// SMTPConfig holds connection settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer delivers messages over plain SMTP with AUTH.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates an SMTPMailer with the given settings.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send implements domain.Mailer. Failures are logged and reported as false;
// callers treat delivery as best-effort.
func (m *SMTPMailer) Send(_ context.Context, kind domain.MailKind, to, name, link string) bool {
	subject, body := composeMessage(kind, name, link)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		slog.Error("smtp send failed", "kind", string(kind), "to", to, "error", err)
		return false
	}
	return true
}

func composeMessage(kind domain.MailKind, name, link string) (subject, body string) {
	switch kind {
	case domain.MailVerification:
		subject = "Please verify your email - Budget Beyond"
		body = fmt.Sprintf(
			"Hello %s,\n\nWelcome to Budget Beyond!\n\n"+
				"To complete your registration, please verify your email address by clicking the link below:\n\n"+
				"%s\n\n"+
				"This verification link will expire in 1 hour.\n\n"+
				"If you did not create an account with Budget Beyond, please ignore this email.\n\n"+
				"Best regards,\nThe Budget Beyond Team",
			name, link)
	case domain.MailWelcome:
		subject = "Welcome to Budget Beyond!"
		body = fmt.Sprintf(
			"Hello %s,\n\nYour email is now verified. Welcome to Budget Beyond!\n\n"+
				"You're ready to track expenses, set up bill reminders, and manage your to-do list.\n\n"+
				"Best regards,\nThe Budget Beyond Team",
			name)
	case domain.MailPasswordReset:
		subject = "Password Reset - Budget Beyond"
		body = fmt.Sprintf(
			"Hello %s,\n\nYou have requested to reset your password.\n\n"+
				"Click the link below to reset it:\n\n%s\n\n"+
				"This link will expire in 1 hour. If you did not request this, please ignore this email.\n\n"+
				"Best regards,\nThe Budget Beyond Team",
			name, link)
	default:
		subject = "Budget Beyond"
		body = "Hello " + name + ","
	}
	return subject, body
}
