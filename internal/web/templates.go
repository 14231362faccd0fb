// Package web serves the server-rendered pages of the catalog.
package web

import (
	"embed"
	"html/template"
	"time"

	bookmodel "library-catalog/internal/domains/book/model"
	loanmodel "library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/utils"
)

//go:embed templates
var templatesFS embed.FS

var statusLabels = map[bookmodel.Status]string{
	bookmodel.StatusAvailable: "Disponible",
	bookmodel.StatusBorrowed:  "Prestado",
	bookmodel.StatusReserved:  "Reservado",
}

// LoadTemplates parses every embedded page. Pages are addressed by their
// define name, e.g. "books/list".
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap(time.Now)).ParseFS(templatesFS,
		"templates/*.html",
		"templates/books/*.html",
		"templates/loans/*.html",
	)
}

func funcMap(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"statusLabel": func(s bookmodel.Status) string {
			if label, ok := statusLabels[s]; ok {
				return label
			}
			return s.String()
		},
		"overdue": func(l loanmodel.LoanResponse) bool {
			return !l.Returned() && l.DueDate.Before(utils.Today(now()))
		},
		"inc": func(n int) int { return n + 1 },
	}
}
