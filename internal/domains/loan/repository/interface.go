package repository

import (
	"context"
	"time"

	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/pagination"
)

// RepositoryInterface is the data access of loans.
// Every method joins the transaction carried by ctx, if any.
type RepositoryInterface interface {
	Create(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	FindByID(ctx context.Context, id int64) (*model.Loan, error)
	// FindByIDForUpdate locks the loan row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Loan, error)
	MarkReturned(ctx context.Context, id int64, returnDate time.Time) (*model.Loan, error)
	Search(ctx context.Context, keyword string, page pagination.PageRequest) ([]model.Loan, int64, error)
	FindAll(ctx context.Context) ([]model.Loan, error)
	FindOverdue(ctx context.Context, today time.Time) ([]model.Loan, error)

	ExistsByBookID(ctx context.Context, bookID int64) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
}
