package service

import (
	"context"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/pagination"
)

// ServiceInterface is the business logic of the catalog.
type ServiceInterface interface {
	Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error)
	FindByID(ctx context.Context, id int64) (*model.BookResponse, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, keyword string, page pagination.PageRequest) (pagination.Page[model.BookResponse], error)
	GetLibraryStats(ctx context.Context) (*model.LibraryStats, error)
	FindByStatus(ctx context.Context, status model.Status) ([]model.BookResponse, error)
	FindAll(ctx context.Context) ([]model.BookResponse, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context) (*excelize.File, error)
}

// LoanCounter is what the catalog needs to know about loans.
// The loan repository implements it.
type LoanCounter interface {
	ExistsByBookID(ctx context.Context, bookID int64) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
}
