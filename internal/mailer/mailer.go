// Package mailer sends transactional mail over SMTP. Delivery is
// fire-and-forget from the caller's perspective; callers that must not block
// send on a goroutine and log failures.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"

	"github.com/hpandey/instaclone-be/internal/config"
)

// Mailer is the notification collaborator used by the auth service.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends mail through a plain-auth SMTP relay.
type SMTPSender struct {
	cfg *config.Config
}

// NewSMTPSender creates an SMTPSender using the process configuration.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers a single HTML email.
func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
