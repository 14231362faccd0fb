package repository

import (
	"context"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/pagination"
)

// RepositoryInterface is the data access of books.
// Every method joins the transaction carried by ctx, if any.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) (*model.Book, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, keyword string, page pagination.PageRequest) ([]model.Book, int64, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByStatus(ctx context.Context, status model.Status) ([]model.Book, error)
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
}
