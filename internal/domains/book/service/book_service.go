package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/cache"
)

// BookService implements ServiceInterface.
type BookService struct {
	repo     repository.RepositoryInterface
	loans    LoanCounter
	cache    cache.Cache
	statsTTL time.Duration
	now      func() time.Time
}

// NewService - Constructor with DI. cache may be nil, which disables stats caching.
func NewService(
	repo repository.RepositoryInterface,
	loans LoanCounter,
	cache cache.Cache,
	statsTTL time.Duration,
) ServiceInterface {
	return &BookService{
		repo:     repo,
		loans:    loans,
		cache:    cache,
		statsTTL: statsTTL,
		now:      time.Now,
	}
}

// Create always stores a new book as AVAILABLE, whatever status the request carries.
func (s *BookService) Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error) {
	if err := s.ensureISBNFree(ctx, req.ISBN, 0); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Status:          model.StatusAvailable,
		CreatedAt:       s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	log.Info().Int64("book_id", created.ID).Str("isbn", created.ISBN).Msg("book created")
	resp := model.ToResponse(*created)
	return &resp, nil
}

func (s *BookService) FindByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.ToResponse(*book)
	return &resp, nil
}

// Update overwrites the editable fields. An empty status keeps the current one.
func (s *BookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ISBN != book.ISBN {
		if err := s.ensureISBNFree(ctx, req.ISBN, id); err != nil {
			return nil, err
		}
	}

	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.PublicationYear = req.PublicationYear
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, model.ErrInvalidBookStatus
		}
		book.Status = req.Status
	}

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	resp := model.ToResponse(*updated)
	return &resp, nil
}

// ensureISBNFree fails with ErrDuplicateISBN when a book other than exceptID owns isbn.
func (s *BookService) ensureISBNFree(ctx context.Context, isbn string, exceptID int64) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if errors.Is(err, model.ErrBookNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != exceptID {
		return model.ErrDuplicateISBN
	}
	return nil
}

// Delete refuses to remove a book referenced by any loan, returned or not.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	hasLoans, err := s.loans.ExistsByBookID(ctx, id)
	if err != nil {
		return fmt.Errorf("check book loans: %w", err)
	}
	if hasLoans {
		return model.ErrBookHasLoans
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)

	log.Info().Int64("book_id", id).Msg("book deleted")
	return nil
}

func (s *BookService) Search(ctx context.Context, keyword string, page pagination.PageRequest) (pagination.Page[model.BookResponse], error) {
	if _, ok := model.SortColumn(page.SortBy); !ok {
		return pagination.Page[model.BookResponse]{}, model.ErrInvalidSortField
	}

	books, total, err := s.repo.Search(ctx, keyword, page)
	if err != nil {
		return pagination.Page[model.BookResponse]{}, err
	}
	return pagination.NewPage(model.ToResponses(books), page, total), nil
}

// GetLibraryStats serves the dashboard counters, cached for statsTTL.
func (s *BookService) GetLibraryStats(ctx context.Context) (*model.LibraryStats, error) {
	var cached model.LibraryStats
	if s.cache != nil {
		found, err := s.cache.Get(ctx, model.StatsCacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", model.StatsCacheKey).Msg("cache GET error")
		} else if found {
			return &cached, nil
		}
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.loans.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active loans: %w", err)
	}
	overdue, err := s.loans.CountOverdue(ctx, utils.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("count overdue loans: %w", err)
	}

	stats := &model.LibraryStats{
		AvailableBooks: counts[model.StatusAvailable],
		BorrowedBooks:  counts[model.StatusBorrowed],
		ActiveLoans:    active,
		OverdueLoans:   overdue,
	}
	for _, n := range counts {
		stats.TotalBooks += n
	}

	if s.cache != nil && s.statsTTL > 0 {
		if err := s.cache.Set(ctx, model.StatsCacheKey, stats, s.statsTTL); err != nil {
			log.Warn().Err(err).Str("key", model.StatsCacheKey).Msg("cache SET error")
		}
	}
	return stats, nil
}

func (s *BookService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, model.StatsCacheKey); err != nil {
		log.Warn().Err(err).Str("key", model.StatsCacheKey).Msg("cache DELETE error")
	}
}

func (s *BookService) FindByStatus(ctx context.Context, status model.Status) ([]model.BookResponse, error) {
	if !status.IsValid() {
		return nil, model.ErrInvalidBookStatus
	}
	books, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(books), nil
}

func (s *BookService) FindAll(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(books), nil
}

var exportHeaders = []string{"Título", "Autor", "ISBN", "Estado"}

// ExportCSV writes every book as CSV, one row per book.
func (s *BookService) ExportCSV(ctx context.Context, w io.Writer) error {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range books {
		if err := cw.Write([]string{b.Title, b.Author, b.ISBN, b.Status.String()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const exportSheet = "Libros"

// ExportXLSX builds a workbook with the same columns as ExportCSV.
func (s *BookService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "D1", headerStyle)
	}

	for i, b := range books {
		row := i + 2
		values := []interface{}{b.Title, b.Author, b.ISBN, b.Status.String()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "B", 40)
	_ = f.SetColWidth(exportSheet, "C", "D", 16)
	return f, nil
}
