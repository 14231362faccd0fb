package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/domains/loan/repository"
	"library-catalog/internal/infrastructure/email"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/utils"
)

// Enqueuer is the part of asynq.Client the scan needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// OverdueScanHandler lists active loans past their due date and queues one
// reminder email per loan. It never modifies loans or books.
type OverdueScanHandler struct {
	loans    repository.RepositoryInterface
	enqueuer Enqueuer
	now      func() time.Time
}

func NewOverdueScanHandler(loans repository.RepositoryInterface, enqueuer Enqueuer) *OverdueScanHandler {
	return &OverdueScanHandler{
		loans:    loans,
		enqueuer: enqueuer,
		now:      time.Now,
	}
}

func (h *OverdueScanHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OverdueScanPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal OverdueScan payload")
			return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	today := utils.Today(h.now())
	if payload.AsOf != nil {
		today = utils.Today(*payload.AsOf)
	}

	overdue, err := h.loans.FindOverdue(ctx, today)
	if err != nil {
		return fmt.Errorf("find overdue loans: %w", err)
	}

	queued := 0
	for _, loan := range overdue {
		if err := h.enqueueReminder(ctx, loan, today); err != nil {
			log.Error().Err(err).Int64("loan_id", loan.ID).Msg("Failed to enqueue overdue reminder")
			continue
		}
		queued++
	}

	log.Info().
		Str("as_of", today.Format(utils.DateLayout)).
		Int("overdue", len(overdue)).
		Int("queued", queued).
		Msg("Overdue loan scan finished")

	if queued < len(overdue) {
		return fmt.Errorf("queued %d of %d overdue reminders", queued, len(overdue))
	}
	return nil
}

func (h *OverdueScanHandler) enqueueReminder(ctx context.Context, loan model.Loan, today time.Time) error {
	data := email.OverdueReminderData{
		LoanID:        loan.ID,
		BorrowerName:  loan.BorrowerName,
		BorrowerEmail: loan.BorrowerEmail,
		BookTitle:     loan.BookTitle,
		DueDate:       loan.DueDate.Format(utils.DateLayout),
		DaysOverdue:   int(today.Sub(loan.DueDate).Hours() / 24),
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	// One reminder per loan per day, even if the scan is retried.
	_, err = h.enqueuer.EnqueueContext(ctx,
		asynq.NewTask(shared.TypeSendOverdueReminder, payload),
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.TaskID(fmt.Sprintf("overdue-reminder-%d-%s", loan.ID, today.Format(utils.DateLayout))),
		asynq.Retention(24*time.Hour),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}
