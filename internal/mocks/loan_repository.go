package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/pagination"
)

type LoanRepository struct {
	mock.Mock
}

func (m *LoanRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	args := m.Called(ctx, loan)
	return loanOrNil(args.Get(0)), args.Error(1)
}

func (m *LoanRepository) FindByID(ctx context.Context, id int64) (*model.Loan, error) {
	args := m.Called(ctx, id)
	return loanOrNil(args.Get(0)), args.Error(1)
}

func (m *LoanRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Loan, error) {
	args := m.Called(ctx, id)
	return loanOrNil(args.Get(0)), args.Error(1)
}

func (m *LoanRepository) MarkReturned(ctx context.Context, id int64, returnDate time.Time) (*model.Loan, error) {
	args := m.Called(ctx, id, returnDate)
	return loanOrNil(args.Get(0)), args.Error(1)
}

func (m *LoanRepository) Search(ctx context.Context, keyword string, page pagination.PageRequest) ([]model.Loan, int64, error) {
	args := m.Called(ctx, keyword, page)
	loans, _ := args.Get(0).([]model.Loan)
	return loans, args.Get(1).(int64), args.Error(2)
}

func (m *LoanRepository) FindAll(ctx context.Context) ([]model.Loan, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]model.Loan)
	return loans, args.Error(1)
}

func (m *LoanRepository) FindOverdue(ctx context.Context, today time.Time) ([]model.Loan, error) {
	args := m.Called(ctx, today)
	loans, _ := args.Get(0).([]model.Loan)
	return loans, args.Error(1)
}

func (m *LoanRepository) ExistsByBookID(ctx context.Context, bookID int64) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *LoanRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LoanRepository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

func loanOrNil(v interface{}) *model.Loan {
	l, _ := v.(*model.Loan)
	return l
}
