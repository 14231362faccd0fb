package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/utils"
)

const (
	pageListSize  = 50
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ListBooks - GET /books
func (h *Handler) ListBooks(c *gin.Context) {
	result, err := h.books.Search(c.Request.Context(), "", pagination.NewPageRequest(0, pageListSize, "id", "ASC"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "books/list", gin.H{"Title": "Libros", "Books": result.Content})
}

// SearchBooks - GET /books/search?query=
func (h *Handler) SearchBooks(c *gin.Context) {
	query := c.Query("query")
	result, err := h.books.Search(c.Request.Context(), query, pagination.NewPageRequest(0, pageListSize, "title", "ASC"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "books/search", gin.H{
		"Title": "Buscar libros",
		"Query": query,
		"Books": result.Content,
	})
}

// NewBook - GET /books/new
func (h *Handler) NewBook(c *gin.Context) {
	h.renderBookForm(c, http.StatusOK, model.BookRequest{}, nil, "")
}

// EditBook - GET /books/edit/:id
func (h *Handler) EditBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		setFlashError(c, "ID de libro inválido")
		redirect(c, "/books")
		return
	}

	book, err := h.books.FindByID(c.Request.Context(), id)
	if errors.Is(err, model.ErrBookNotFound) {
		setFlashError(c, fmt.Sprintf("No se encontró el libro con ID: %d", id))
		redirect(c, "/books")
		return
	}
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderBookForm(c, http.StatusOK, book.ToRequest(), nil, "")
}

// SaveBook - POST /books/save. Creates when the form has no id, updates otherwise.
func (h *Handler) SaveBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderBookForm(c, http.StatusOK, req, nil, "Datos del formulario inválidos")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		errs, _ := fieldErrors(err)
		h.renderBookForm(c, http.StatusOK, req, errs, "")
		return
	}

	ctx := c.Request.Context()
	var (
		err     error
		message string
	)
	if req.ID != 0 {
		_, err = h.books.Update(ctx, req.ID, req)
		message = "Libro actualizado exitosamente"
	} else {
		_, err = h.books.Create(ctx, req)
		message = "Libro creado exitosamente"
	}

	switch {
	case err == nil:
		setFlashSuccess(c, message)
		redirect(c, "/books")
	case errors.Is(err, model.ErrDuplicateISBN):
		h.renderBookForm(c, http.StatusOK, req, nil, fmt.Sprintf("Ya existe un libro con el ISBN: %s", req.ISBN))
	case errors.Is(err, model.ErrInvalidBookStatus):
		h.renderBookForm(c, http.StatusOK, req, map[string]string{"status": "Estado inválido"}, "")
	case errors.Is(err, model.ErrBookNotFound):
		setFlashError(c, fmt.Sprintf("No se encontró el libro con ID: %d", req.ID))
		redirect(c, "/books")
	default:
		h.renderError(c, err)
	}
}

func (h *Handler) renderBookForm(c *gin.Context, status int, book model.BookRequest, errs map[string]string, message string) {
	if errs == nil {
		errs = map[string]string{}
	}
	title := "Nuevo libro"
	if book.ID != 0 {
		title = "Editar libro"
	}
	h.render(c, status, "books/form", gin.H{
		"Title":    title,
		"Book":     book,
		"Statuses": model.Statuses,
		"Errors":   errs,
		"Error":    message,
	})
}

// DeleteBook - GET /books/delete/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		setFlashError(c, "ID de libro inválido")
		redirect(c, "/books")
		return
	}

	err = h.books.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		setFlashSuccess(c, "Libro eliminado exitosamente")
	case errors.Is(err, model.ErrBookNotFound):
		setFlashError(c, fmt.Sprintf("No se encontró el libro con ID: %d", id))
	case errors.Is(err, model.ErrBookHasLoans):
		setFlashError(c, "No se puede eliminar el libro porque tiene préstamos registrados")
	default:
		log.Error().Err(err).Int64("book_id", id).Msg("[Pages] delete book failed")
		setFlashError(c, "No se pudo eliminar el libro")
	}
	redirect(c, "/books")
}

// ExportCSV - GET /books/export
func (h *Handler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.books.ExportCSV(c.Request.Context(), &buf); err != nil {
		h.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=libros.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX - GET /books/export.xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	f, err := h.books.ExportXLSX(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=libros.xlsx")
	c.Data(http.StatusOK, xlsxMediaType, buf.Bytes())
}
