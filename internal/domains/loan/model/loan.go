package model

import "time"

// LoanPeriodDays is the default length of a loan.
const LoanPeriodDays = 14

// Loan records one borrowing of a book. ReturnDate is nil while the loan is outstanding.
type Loan struct {
	ID            int64      `json:"id" db:"id"`
	BookID        int64      `json:"bookId" db:"book_id"`
	BookTitle     string     `json:"bookTitle,omitempty" db:"book_title"`
	BorrowerName  string     `json:"borrowerName" db:"borrower_name"`
	BorrowerEmail string     `json:"borrowerEmail" db:"borrower_email"`
	LoanDate      time.Time  `json:"loanDate" db:"loan_date"`
	DueDate       time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate    *time.Time `json:"returnDate" db:"return_date"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

func (l Loan) IsActive() bool {
	return l.ReturnDate == nil
}

// IsOverdue reports whether the loan is outstanding past its due date.
func (l Loan) IsOverdue(today time.Time) bool {
	return l.IsActive() && l.DueDate.Before(today)
}

// DueDateFor is the default due date of a loan starting on loanDate.
func DueDateFor(loanDate time.Time) time.Time {
	return loanDate.AddDate(0, 0, LoanPeriodDays)
}

// sortColumns maps the public sort field names to qualified columns.
var sortColumns = map[string]string{
	"id":            "l.id",
	"bookId":        "l.book_id",
	"bookTitle":     "b.title",
	"borrowerName":  "l.borrower_name",
	"borrowerEmail": "l.borrower_email",
	"loanDate":      "l.loan_date",
	"dueDate":       "l.due_date",
	"returnDate":    "l.return_date",
	"createdAt":     "l.created_at",
}

// SortColumn resolves a sort field; ok is false for unknown fields.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}
