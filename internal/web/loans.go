package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/utils"
)

// ListLoans - GET /loans?page&size&query, newest loans first.
func (h *Handler) ListLoans(c *gin.Context) {
	page := queryInt(c, "page", pagination.DefaultPage)
	size := queryInt(c, "size", pagination.DefaultSize)
	if page < 0 || page > pagination.MaxPage {
		page = pagination.DefaultPage
	}
	if size < 1 {
		size = pagination.DefaultSize
	}
	query := c.Query("query")

	result, err := h.loans.Search(c.Request.Context(), query, pagination.NewPageRequest(page, size, "loanDate", "desc"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "loans/list", gin.H{
		"Title": "Préstamos",
		"Loans": result,
		"Query": query,
	})
}

// NewLoan - GET /loans/new. Only AVAILABLE books are offered.
func (h *Handler) NewLoan(c *gin.Context) {
	req := model.LoanRequest{LoanDate: utils.Today(h.now()).Format(utils.DateLayout)}
	h.renderLoanForm(c, req, nil, "")
}

// SaveLoan - POST /loans/save
func (h *Handler) SaveLoan(c *gin.Context) {
	var req model.LoanRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLoanForm(c, req, nil, "Datos del formulario inválidos")
		return
	}
	if err := req.Validate(); err != nil {
		errs, _ := fieldErrors(err)
		h.renderLoanForm(c, req, errs, "")
		return
	}

	_, err := h.loans.Create(c.Request.Context(), req)
	switch {
	case err == nil:
		setFlashSuccess(c, "Préstamo registrado exitosamente")
		redirect(c, "/loans")
	case errors.Is(err, bookmodel.ErrBookNotAvailable):
		h.renderLoanForm(c, req, nil, "El libro seleccionado no está disponible para préstamo")
	case errors.Is(err, bookmodel.ErrBookNotFound):
		h.renderLoanForm(c, req, nil, fmt.Sprintf("No se encontró el libro con ID: %d", req.BookID))
	case errors.Is(err, model.ErrDueBeforeLoan), errors.Is(err, model.ErrInvalidDate):
		h.renderLoanForm(c, req, map[string]string{"dueDate": "Fecha de vencimiento inválida"}, "")
	default:
		h.renderError(c, err)
	}
}

func (h *Handler) renderLoanForm(c *gin.Context, loan model.LoanRequest, errs map[string]string, message string) {
	books, err := h.books.FindByStatus(c.Request.Context(), bookmodel.StatusAvailable)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if errs == nil {
		errs = map[string]string{}
	}
	h.render(c, http.StatusOK, "loans/form", gin.H{
		"Title":  "Nuevo préstamo",
		"Loan":   loan,
		"Books":  books,
		"Errors": errs,
		"Error":  message,
	})
}

// ReturnLoan - GET /loans/return/:id
func (h *Handler) ReturnLoan(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		setFlashError(c, "ID de préstamo inválido")
		redirect(c, "/loans")
		return
	}

	_, err = h.loans.ReturnBook(c.Request.Context(), id)
	switch {
	case err == nil:
		setFlashSuccess(c, "Libro devuelto exitosamente")
	case errors.Is(err, model.ErrLoanNotFound):
		setFlashError(c, fmt.Sprintf("No se encontró el préstamo con ID: %d", id))
	case errors.Is(err, model.ErrLoanAlreadyReturned):
		setFlashError(c, "El préstamo ya fue devuelto")
	default:
		h.renderError(c, err)
		return
	}
	redirect(c, "/loans")
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
