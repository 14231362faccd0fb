package main

import (
	"github.com/hibiken/asynq"

	loanJob "library-catalog/internal/domains/loan/job"
	emailJob "library-catalog/internal/infrastructure/email/job"
	"library-catalog/internal/shared"
	"library-catalog/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	overdueScan     *loanJob.OverdueScanHandler
	overdueReminder *emailJob.OverdueReminderHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		overdueScan:     loanJob.NewOverdueScanHandler(c.LoanRepo, c.AsynqClient),
		overdueReminder: emailJob.NewOverdueReminderHandler(c.EmailService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeScanOverdueLoans, h.overdueScan.ProcessTask)
	mux.HandleFunc(shared.TypeSendOverdueReminder, h.overdueReminder.ProcessTask)
}
