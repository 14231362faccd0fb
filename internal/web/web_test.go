package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	bookmodel "library-catalog/internal/domains/book/model"
	loanmodel "library-catalog/internal/domains/loan/model"
	"library-catalog/internal/mocks"
	"library-catalog/internal/shared/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	books  *mocks.BookService
	loans  *mocks.LoanService
	router *gin.Engine
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	books := new(mocks.BookService)
	loans := new(mocks.LoanService)
	h := NewHandler(books, loans)
	h.now = func() time.Time { return fixedNow }

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", h.Home)
	r.GET("/books", h.ListBooks)
	r.GET("/books/search", h.SearchBooks)
	r.GET("/books/new", h.NewBook)
	r.GET("/books/edit/:id", h.EditBook)
	r.POST("/books/save", h.SaveBook)
	r.GET("/books/delete/:id", h.DeleteBook)
	r.GET("/books/export", h.ExportCSV)
	r.GET("/books/export.xlsx", h.ExportXLSX)
	r.GET("/loans", h.ListLoans)
	r.GET("/loans/new", h.NewLoan)
	r.POST("/loans/save", h.SaveLoan)
	r.GET("/loans/return/:id", h.ReturnLoan)

	t.Cleanup(func() {
		books.AssertExpectations(t)
		loans.AssertExpectations(t)
	})
	return fixture{books: books, loans: loans, router: r}
}

func (f fixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f fixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// flashCookie returns the decoded value of a flash cookie set by the response.
func flashCookie(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name && ck.MaxAge > 0 {
			v, err := url.QueryUnescape(ck.Value)
			require.NoError(t, err)
			return v
		}
	}
	return ""
}

func cleanCode() bookmodel.BookResponse {
	return bookmodel.BookResponse{
		ID:              1,
		Title:           "Clean Code",
		Author:          "Robert C. Martin",
		ISBN:            "9780132350884",
		PublicationYear: 2008,
		Status:          bookmodel.StatusAvailable,
	}
}

func bookForm() url.Values {
	return url.Values{
		"title":           {"Clean Code"},
		"author":          {"Robert C. Martin"},
		"isbn":            {"9780132350884"},
		"publicationYear": {"2008"},
	}
}

func Test_Home_ShowsStats(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("GetLibraryStats", mock.Anything).Return(&bookmodel.LibraryStats{TotalBooks: 12, OverdueLoans: 1}, nil)
	f.loans.On("FindOverdue", mock.Anything).Return([]loanmodel.LoanResponse{{
		ID:           7,
		BookTitle:    "Refactoring",
		BorrowerName: "Luis Gómez",
		LoanDate:     loanmodel.NewDate(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
		DueDate:      loanmodel.NewDate(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)),
	}}, nil)

	// act
	w := f.get("/")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>12</strong>Libros")
	assert.Contains(t, w.Body.String(), "<strong>1</strong>Préstamos vencidos")
	assert.Contains(t, w.Body.String(), "Refactoring")
	assert.Contains(t, w.Body.String(), `href="/loans/return/7"`)
}

func Test_Home_RendersWithoutOverduePanel(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("GetLibraryStats", mock.Anything).Return(&bookmodel.LibraryStats{TotalBooks: 2}, nil)
	f.loans.On("FindOverdue", mock.Anything).Return(nil, assert.AnError)

	// act
	w := f.get("/")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<h2>Préstamos vencidos</h2>")
}

func Test_ListBooks_FirstFiftyByID(t *testing.T) {
	// setup
	f := newFixture(t)
	page := pagination.NewPageRequest(0, 50, "id", "ASC")
	f.books.On("Search", mock.Anything, "", page).
		Return(pagination.NewPage([]bookmodel.BookResponse{cleanCode()}, page, 1), nil)

	// act
	w := f.get("/books")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Clean Code")
	assert.Contains(t, w.Body.String(), "Disponible")
	assert.Contains(t, w.Body.String(), `placeholder="Título o autor"`)
	assert.NotContains(t, w.Body.String(), "ISBN\"")
}

func Test_ListBooks_ShowsAndClearsFlash(t *testing.T) {
	// setup
	f := newFixture(t)
	page := pagination.NewPageRequest(0, 50, "id", "ASC")
	f.books.On("Search", mock.Anything, "", page).
		Return(pagination.NewPage([]bookmodel.BookResponse{}, page, 0), nil)
	flash := &http.Cookie{Name: flashSuccessCookie, Value: url.QueryEscape("Libro creado exitosamente")}

	// act
	w := f.get("/books", flash)

	// assert
	assert.Contains(t, w.Body.String(), "Libro creado exitosamente")
	var cleared bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == flashSuccessCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func Test_SearchBooks_ByTitle(t *testing.T) {
	// setup
	f := newFixture(t)
	page := pagination.NewPageRequest(0, 50, "title", "ASC")
	f.books.On("Search", mock.Anything, "clean", page).
		Return(pagination.NewPage([]bookmodel.BookResponse{cleanCode()}, page, 1), nil)

	// act
	w := f.get("/books/search?query=clean")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="clean"`)
	assert.Contains(t, w.Body.String(), "9780132350884")
}

func Test_NewBook_RendersEmptyForm(t *testing.T) {
	// setup
	f := newFixture(t)

	// act
	w := f.get("/books/new")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nuevo libro")
	assert.NotContains(t, w.Body.String(), `name="id"`)
}

func Test_EditBook_PrefillsForm(t *testing.T) {
	// setup
	f := newFixture(t)
	book := cleanCode()
	f.books.On("FindByID", mock.Anything, int64(1)).Return(&book, nil)

	// act
	w := f.get("/books/edit/1")

	// assert
	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `name="id" value="1"`)
	assert.Contains(t, body, `value="Clean Code"`)
	assert.Contains(t, body, `<option value="AVAILABLE" selected>`)
}

func Test_EditBook_NotFoundRedirects(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("FindByID", mock.Anything, int64(9)).Return(nil, bookmodel.ErrBookNotFound)

	// act
	w := f.get("/books/edit/9")

	// assert
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))
	assert.Equal(t, "No se encontró el libro con ID: 9", flashCookie(t, w, flashErrorCookie))
}

func Test_SaveBook_CreatesWhenNoID(t *testing.T) {
	// setup
	f := newFixture(t)
	created := cleanCode()
	f.books.On("Create", mock.Anything, mock.MatchedBy(func(r bookmodel.BookRequest) bool {
		return r.ID == 0 && r.ISBN == "9780132350884" && r.PublicationYear == 2008
	})).Return(&created, nil)

	// act
	w := f.post("/books/save", bookForm())

	// assert
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))
	assert.Equal(t, "Libro creado exitosamente", flashCookie(t, w, flashSuccessCookie))
}

func Test_SaveBook_UpdatesWhenIDPresent(t *testing.T) {
	// setup
	f := newFixture(t)
	form := bookForm()
	form.Set("id", "1")
	form.Set("status", "RESERVED")
	updated := cleanCode()
	f.books.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(r bookmodel.BookRequest) bool {
		return r.Status == bookmodel.StatusReserved
	})).Return(&updated, nil)

	// act
	w := f.post("/books/save", form)

	// assert
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "Libro actualizado exitosamente", flashCookie(t, w, flashSuccessCookie))
}

func Test_SaveBook_ValidationErrorsRerenderForm(t *testing.T) {
	// setup
	f := newFixture(t)
	form := bookForm()
	form.Set("isbn", "123")

	// act
	w := f.post("/books/save", form)

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "isbn must be exactly 13 characters")
	f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func Test_SaveBook_DuplicateISBNRerendersForm(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("Create", mock.Anything, mock.Anything).Return(nil, bookmodel.ErrDuplicateISBN)

	// act
	w := f.post("/books/save", bookForm())

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ya existe un libro con el ISBN: 9780132350884")
	assert.Contains(t, w.Body.String(), `value="Clean Code"`)
}

func Test_DeleteBook(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		cookie string
		want   string
	}{
		{"deleted", nil, flashSuccessCookie, "Libro eliminado exitosamente"},
		{"not found", bookmodel.ErrBookNotFound, flashErrorCookie, "No se encontró el libro con ID: 4"},
		{"has loans", bookmodel.ErrBookHasLoans, flashErrorCookie, "No se puede eliminar el libro porque tiene préstamos registrados"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// setup
			f := newFixture(t)
			f.books.On("Delete", mock.Anything, int64(4)).Return(tt.err)

			// act
			w := f.get("/books/delete/4")

			// assert
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/books", w.Header().Get("Location"))
			assert.Equal(t, tt.want, flashCookie(t, w, tt.cookie))
		})
	}
}

func Test_ExportCSV_Attachment(t *testing.T) {
	// setup
	f := newFixture(t)
	csv := "Título,Autor,ISBN,Estado\nClean Code,Robert C. Martin,9780132350884,AVAILABLE\n"
	f.books.On("ExportCSV", mock.Anything, mock.Anything).Return(nil, csv)

	// act
	w := f.get("/books/export")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=libros.csv", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, csv, w.Body.String())
}

func Test_ExportXLSX_Attachment(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("ExportXLSX", mock.Anything).Return(excelize.NewFile(), nil)

	// act
	w := f.get("/books/export.xlsx")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxMediaType, w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func Test_ListLoans_NewestFirst(t *testing.T) {
	// setup
	f := newFixture(t)
	page := pagination.NewPageRequest(1, 5, "loanDate", "desc")
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	loans := []loanmodel.LoanResponse{{
		ID:           3,
		BookTitle:    "Clean Code",
		BorrowerName: "Ana Pérez",
		LoanDate:     loanmodel.NewDate(due.AddDate(0, 0, -14)),
		DueDate:      loanmodel.NewDate(due),
	}}
	f.loans.On("Search", mock.Anything, "ana", page).Return(pagination.NewPage(loans, page, 11), nil)

	// act
	w := f.get("/loans?page=1&size=5&query=ana")

	// assert
	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "Ana Pérez")
	assert.Contains(t, body, `class="overdue"`)
	assert.Contains(t, body, "/loans/return/3")
	assert.Contains(t, body, "Página 2 de 3")
}

func Test_ListLoans_BadParamsFallBackToDefaults(t *testing.T) {
	// setup
	f := newFixture(t)
	page := pagination.NewPageRequest(0, 10, "loanDate", "desc")
	f.loans.On("Search", mock.Anything, "", page).Return(pagination.NewPage([]loanmodel.LoanResponse{}, page, 0), nil)

	// act
	w := f.get("/loans?page=x&size=-3")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No hay préstamos.")
}

func Test_ListLoans_PageBeyondMaxFallsBackToFirst(t *testing.T) {
	// setup
	f := newFixture(t)
	page := pagination.NewPageRequest(0, 100, "loanDate", "desc")
	f.loans.On("Search", mock.Anything, "", page).Return(pagination.NewPage([]loanmodel.LoanResponse{}, page, 0), nil)

	// act
	w := f.get("/loans?page=200000000000000000&size=100")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_NewLoan_OffersAvailableBooksOnly(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("FindByStatus", mock.Anything, bookmodel.StatusAvailable).Return([]bookmodel.BookResponse{cleanCode()}, nil)

	// act
	w := f.get("/loans/new")

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Clean Code (9780132350884)")
	assert.Contains(t, w.Body.String(), `value="2025-01-20"`)
}

func Test_SaveLoan_Success(t *testing.T) {
	// setup
	f := newFixture(t)
	f.loans.On("Create", mock.Anything, loanmodel.LoanRequest{
		BookID: 1, BorrowerName: "Ana Pérez", BorrowerEmail: "ana@example.com", LoanDate: "2025-01-20",
	}).Return(&loanmodel.LoanResponse{ID: 5}, nil)

	// act
	w := f.post("/loans/save", url.Values{
		"bookId":        {"1"},
		"borrowerName":  {"Ana Pérez"},
		"borrowerEmail": {"ana@example.com"},
		"loanDate":      {"2025-01-20"},
	})

	// assert
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/loans", w.Header().Get("Location"))
	assert.Equal(t, "Préstamo registrado exitosamente", flashCookie(t, w, flashSuccessCookie))
}

func Test_SaveLoan_ValidationRerendersWithBooks(t *testing.T) {
	// setup
	f := newFixture(t)
	f.books.On("FindByStatus", mock.Anything, bookmodel.StatusAvailable).Return([]bookmodel.BookResponse{cleanCode()}, nil)

	// act
	w := f.post("/loans/save", url.Values{"bookId": {"1"}, "borrowerName": {"Ana"}, "borrowerEmail": {"nope"}})

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email format")
	f.loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func Test_SaveLoan_BookNotAvailable(t *testing.T) {
	// setup
	f := newFixture(t)
	f.loans.On("Create", mock.Anything, mock.Anything).Return(nil, bookmodel.ErrBookNotAvailable)
	f.books.On("FindByStatus", mock.Anything, bookmodel.StatusAvailable).Return([]bookmodel.BookResponse{}, nil)

	// act
	w := f.post("/loans/save", url.Values{"bookId": {"1"}, "borrowerName": {"Ana"}, "borrowerEmail": {"ana@example.com"}})

	// assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "no está disponible")
}

func Test_ReturnLoan(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		cookie string
		want   string
	}{
		{"returned", nil, flashSuccessCookie, "Libro devuelto exitosamente"},
		{"not found", loanmodel.ErrLoanNotFound, flashErrorCookie, "No se encontró el préstamo con ID: 8"},
		{"already returned", loanmodel.ErrLoanAlreadyReturned, flashErrorCookie, "El préstamo ya fue devuelto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// setup
			f := newFixture(t)
			f.loans.On("ReturnBook", mock.Anything, int64(8)).Return(&loanmodel.LoanResponse{ID: 8}, tt.err)

			// act
			w := f.get("/loans/return/8")

			// assert
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/loans", w.Header().Get("Location"))
			assert.Equal(t, tt.want, flashCookie(t, w, tt.cookie))
		})
	}
}
