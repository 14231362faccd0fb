package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPEmailService sends through an unauthenticated relay such as MailHog.
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	recipients := append(append([]string{}, req.To...), req.Cc...)
	if err := s.send(s.smtpAddr, nil, s.smtpFrom, recipients, buildMessage(s.smtpFrom, req)); err != nil {
		log.Error().
			Err(err).
			Strs("to", req.To).
			Str("smtp_addr", s.smtpAddr).
			Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendOverdueReminder(ctx context.Context, data OverdueReminderData) error {
	return s.SendEmail(ctx, overdueReminder(data))
}
