package shared

import "time"

// Task types enqueued through asynq.
const (
	TypeScanOverdueLoans    = "loan:scan_overdue"
	TypeSendOverdueReminder = "email:overdue_reminder"
)

// Queues and their worker priorities.
const (
	QueueLoan  = "loan"
	QueueEmail = "email"
)

var QueuePriorities = map[string]int{
	QueueEmail: 6,
	QueueLoan:  4,
}

// OverdueScanPayload is the body of a TypeScanOverdueLoans task.
// AsOf is optional; the handler falls back to the current date.
type OverdueScanPayload struct {
	AsOf *time.Time `json:"asOf,omitempty"`
}
