package email

type EmailRequest struct {
	To      []string // Recipients
	Cc      []string // Carbon copy (optional)
	Subject string
	Body    string
	IsHTML  bool
}

// OverdueReminderData is the payload of an overdue reminder task.
type OverdueReminderData struct {
	LoanID        int64  `json:"loanId"`
	BorrowerName  string `json:"borrowerName"`
	BorrowerEmail string `json:"borrowerEmail"`
	BookTitle     string `json:"bookTitle"`
	DueDate       string `json:"dueDate"`
	DaysOverdue   int    `json:"daysOverdue"`
}
