package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

// Handler - REST endpoints under /api/books
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// bindRequest decodes and validates a BookRequest body, writing the error response itself.
func bindRequest(c *gin.Context) (model.BookRequest, bool) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return req, false
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		model.HandleBookError(c, err)
		return req, false
	}
	return req, true
}

// CreateBook - POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	book, err := h.service.Create(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if model.HandleBookError(c, err) {
		return
	}

	book, err := h.service.FindByID(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, book)
}

// ListBooks - GET /api/books
// Optional ?status= narrows the list to one status.
func (h *Handler) ListBooks(c *gin.Context) {
	var (
		books []model.BookResponse
		err   error
	)
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		books, err = h.service.FindByStatus(c.Request.Context(), model.Status(status))
	} else {
		books, err = h.service.FindAll(c.Request.Context())
	}
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, books)
}

// SearchBooks - GET /api/books/search?page&size&sortBy&direction&keyword
func (h *Handler) SearchBooks(c *gin.Context) {
	page, err := pagination.FromQuery(c)
	if model.HandleBookError(c, err) {
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("keyword"), page)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, result)
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if model.HandleBookError(c, err) {
		return
	}

	req, ok := bindRequest(c)
	if !ok {
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, req)
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if model.HandleBookError(c, err) {
		return
	}

	if model.HandleBookError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}
	response.NoContent(c)
}

// GetLibraryStats - GET /api/books/stats
func (h *Handler) GetLibraryStats(c *gin.Context) {
	stats, err := h.service.GetLibraryStats(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, stats)
}
