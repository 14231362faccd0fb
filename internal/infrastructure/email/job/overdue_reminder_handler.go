package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/infrastructure/email"
)

// OverdueReminderHandler sends one reminder per email:overdue_reminder task.
type OverdueReminderHandler struct {
	emailService email.EmailService
}

func NewOverdueReminderHandler(emailService email.EmailService) *OverdueReminderHandler {
	return &OverdueReminderHandler{
		emailService: emailService,
	}
}

func (h *OverdueReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.OverdueReminderData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal OverdueReminder payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.emailService.SendOverdueReminder(ctx, payload); err != nil {
		log.Error().Err(err).Int64("loan_id", payload.LoanID).Msg("Failed to send overdue reminder")
		return fmt.Errorf("send overdue reminder: %w", err)
	}

	log.Info().
		Int64("loan_id", payload.LoanID).
		Str("email", payload.BorrowerEmail).
		Msg("Overdue reminder sent")
	return nil
}
