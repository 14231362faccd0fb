package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/response"
)

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
	ErrDueBeforeLoan       = errors.New("due date is before loan date")
	ErrInvalidDate         = errors.New("invalid date")
)

var loanErrorMap = map[error]bookmodel.ErrorMapping{
	ErrLoanNotFound: {
		Status:  http.StatusNotFound,
		Code:    "LOAN_NOT_FOUND",
		Message: "The specified loan does not exist",
	},
	ErrLoanAlreadyReturned: {
		Status:  http.StatusConflict,
		Code:    "LOAN_ALREADY_RETURNED",
		Message: "The loan has already been returned",
	},
	ErrDueBeforeLoan: {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Due date must not be before the loan date"},
	ErrInvalidDate:   {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Dates must be formatted as YYYY-MM-DD"},
}

// HandleLoanError renders loan errors and defers everything else
// (book errors, validation, unknown) to the book handler.
func HandleLoanError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for target, mapping := range loanErrorMap {
		if errors.Is(err, target) {
			response.ErrorResponse(c, mapping.Status, mapping.Code, mapping.Message)
			return true
		}
	}

	return bookmodel.HandleBookError(c, err)
}
