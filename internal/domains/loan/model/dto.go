package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-catalog/internal/shared/utils"
)

// LoanRequest is the body of POST /api/loans and the loan form.
// LoanDate and DueDate are optional YYYY-MM-DD strings.
type LoanRequest struct {
	BookID        int64  `json:"bookId" form:"bookId"`
	BorrowerName  string `json:"borrowerName" form:"borrowerName"`
	BorrowerEmail string `json:"borrowerEmail" form:"borrowerEmail"`
	LoanDate      string `json:"loanDate,omitempty" form:"loanDate"`
	DueDate       string `json:"dueDate,omitempty" form:"dueDate"`
}

func (r LoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book is required"),
			validation.Min(int64(1)),
		),
		validation.Field(&r.BorrowerName,
			validation.Required.Error("borrower name is required"),
			validation.RuneLength(1, 100),
		),
		validation.Field(&r.BorrowerEmail,
			validation.Required.Error("borrower email is required"),
			validation.RuneLength(1, 150),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.LoanDate, validation.Date(utils.DateLayout).Error("must be a date formatted as YYYY-MM-DD")),
		validation.Field(&r.DueDate,
			validation.Date(utils.DateLayout).Error("must be a date formatted as YYYY-MM-DD"),
			validation.By(r.dueNotBeforeLoan),
		),
	)
}

func (r LoanRequest) dueNotBeforeLoan(interface{}) error {
	loan, err1 := utils.ParseDate(r.LoanDate)
	due, err2 := utils.ParseDate(r.DueDate)
	if err1 != nil || err2 != nil || loan == nil || due == nil {
		return nil
	}
	if due.Before(*loan) {
		return errors.New("must not be before the loan date")
	}
	return nil
}

// Dates parses LoanDate and DueDate; blank values come back nil.
func (r LoanRequest) Dates() (loanDate, dueDate *time.Time, err error) {
	if loanDate, err = utils.ParseDate(r.LoanDate); err != nil {
		return nil, nil, ErrInvalidDate
	}
	if dueDate, err = utils.ParseDate(r.DueDate); err != nil {
		return nil, nil, ErrInvalidDate
	}
	return loanDate, dueDate, nil
}

// LoanResponse is the API representation of a Loan.
type LoanResponse struct {
	ID            int64  `json:"id"`
	BookID        int64  `json:"bookId"`
	BookTitle     string `json:"bookTitle,omitempty"`
	BorrowerName  string `json:"borrowerName"`
	BorrowerEmail string `json:"borrowerEmail"`
	LoanDate      Date   `json:"loanDate"`
	DueDate       Date   `json:"dueDate"`
	ReturnDate    *Date  `json:"returnDate"`
}

func ToResponse(l Loan) LoanResponse {
	return LoanResponse{
		ID:            l.ID,
		BookID:        l.BookID,
		BookTitle:     l.BookTitle,
		BorrowerName:  l.BorrowerName,
		BorrowerEmail: l.BorrowerEmail,
		LoanDate:      NewDate(l.LoanDate),
		DueDate:       NewDate(l.DueDate),
		ReturnDate:    NewDatePtr(l.ReturnDate),
	}
}

func ToResponses(loans []Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = ToResponse(l)
	}
	return out
}

// Returned is used by the loan list page.
func (r LoanResponse) Returned() bool {
	return r.ReturnDate != nil
}
