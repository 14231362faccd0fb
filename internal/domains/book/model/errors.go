package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrDuplicateISBN     = errors.New("ISBN already exists")
	ErrBookNotAvailable  = errors.New("book is not available for loan")
	ErrBookHasLoans      = errors.New("book has loans and cannot be deleted")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidBookStatus = errors.New("invalid book status")
)

// ErrorMapping is the HTTP rendering of a domain error.
type ErrorMapping struct {
	Status  int
	Code    string
	Message string
}

var bookErrorMap = map[error]ErrorMapping{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "The specified book does not exist",
	},
	ErrDuplicateISBN: {
		Status:  http.StatusConflict,
		Code:    "DUPLICATE_ISBN",
		Message: "This ISBN is already registered to another book",
	},
	ErrBookNotAvailable: {
		Status:  http.StatusConflict,
		Code:    "BOOK_NOT_AVAILABLE",
		Message: "The book is not available for loan",
	},
	ErrBookHasLoans: {
		Status:  http.StatusBadRequest,
		Code:    "BOOK_HAS_LOANS",
		Message: "The book has loans and cannot be deleted",
	},
	ErrInvalidSortField:  {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Unknown sort field"},
	ErrInvalidBookStatus: {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Unknown book status"},
	utils.ErrInvalidID:   {Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Invalid id"},
}

// LookupError returns the HTTP mapping of a known book error.
func LookupError(err error) (ErrorMapping, bool) {
	for target, mapping := range bookErrorMap {
		if errors.Is(err, target) {
			return mapping, true
		}
	}
	return ErrorMapping{}, false
}

// HandleBookError writes the error response for err and reports whether it did.
// Unknown errors are logged and answered with a generic 500.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return true
	}

	if mapping, ok := LookupError(err); ok {
		response.ErrorResponse(c, mapping.Status, mapping.Code, mapping.Message)
		return true
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("[Handler] unexpected book error")
	response.InternalServerError(c, "Internal server error")
	return true
}
