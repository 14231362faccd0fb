package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// logEmailService only logs outgoing mail. It is the development default.
type logEmailService struct {
	from string
}

func NewLogEmailService(from string) EmailService {
	return &logEmailService{from: from}
}

func (s *logEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return ErrNoRecipients
	}
	log.Info().
		Str("from", s.from).
		Strs("to", req.To).
		Str("subject", req.Subject).
		Int("body_bytes", len(req.Body)).
		Msg("[Email] message logged instead of sent")
	return nil
}

func (s *logEmailService) SendOverdueReminder(ctx context.Context, data OverdueReminderData) error {
	return s.SendEmail(ctx, overdueReminder(data))
}
