package web

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	bookservice "library-catalog/internal/domains/book/service"
	loanservice "library-catalog/internal/domains/loan/service"
)

// Handler renders the HTML pages on top of the book and loan services.
type Handler struct {
	books bookservice.ServiceInterface
	loans loanservice.ServiceInterface
	now   func() time.Time
}

func NewHandler(books bookservice.ServiceInterface, loans loanservice.ServiceInterface) *Handler {
	return &Handler{books: books, loans: loans, now: time.Now}
}

// Home - GET /
func (h *Handler) Home(c *gin.Context) {
	stats, err := h.books.GetLibraryStats(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	// The overdue panel is informational; the dashboard still renders without it.
	overdue, err := h.loans.FindOverdue(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("[Pages] overdue loans unavailable")
	}

	h.render(c, http.StatusOK, "index", gin.H{"Title": "Inicio", "Stats": stats, "Overdue": overdue})
}

// render adds the flash messages and page defaults every layout expects.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	data["Flash"] = popFlash(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	c.HTML(status, page, data)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[Pages] request failed")
	h.render(c, http.StatusInternalServerError, "error", gin.H{
		"Title":   "Error",
		"Message": "Ocurrió un error inesperado. Inténtelo de nuevo más tarde.",
	})
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// fieldErrors flattens ozzo validation errors for inline display.
func fieldErrors(err error) (map[string]string, bool) {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out, true
}
