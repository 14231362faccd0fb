package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/domains/loan/service"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateLoan - POST /api/loans
func (h *Handler) CreateLoan(c *gin.Context) {
	var req model.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if model.HandleLoanError(c, req.Validate()) {
		return
	}

	loan, err := h.service.Create(c.Request.Context(), req)
	if model.HandleLoanError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, loan)
}

// ReturnBook - PUT /api/loans/:loanId/return
func (h *Handler) ReturnBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("loanId"))
	if model.HandleLoanError(c, err) {
		return
	}

	loan, err := h.service.ReturnBook(c.Request.Context(), id)
	if model.HandleLoanError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, loan)
}

// ListLoans - GET /api/loans
func (h *Handler) ListLoans(c *gin.Context) {
	loans, err := h.service.FindAll(c.Request.Context())
	if model.HandleLoanError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, loans)
}

// SearchLoans - GET /api/loans/search
func (h *Handler) SearchLoans(c *gin.Context) {
	page, err := pagination.FromQuery(c)
	if model.HandleLoanError(c, err) {
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("keyword"), page)
	if model.HandleLoanError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListOverdueLoans - GET /api/loans/overdue
func (h *Handler) ListOverdueLoans(c *gin.Context) {
	loans, err := h.service.FindOverdue(c.Request.Context())
	if model.HandleLoanError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, loans)
}
