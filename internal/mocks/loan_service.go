package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/pagination"
)

type LoanService struct {
	mock.Mock
}

func (m *LoanService) Create(ctx context.Context, req model.LoanRequest) (*model.LoanResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.LoanResponse)
	return resp, args.Error(1)
}

func (m *LoanService) ReturnBook(ctx context.Context, loanID int64) (*model.LoanResponse, error) {
	args := m.Called(ctx, loanID)
	resp, _ := args.Get(0).(*model.LoanResponse)
	return resp, args.Error(1)
}

func (m *LoanService) Search(ctx context.Context, keyword string, page pagination.PageRequest) (pagination.Page[model.LoanResponse], error) {
	args := m.Called(ctx, keyword, page)
	result, _ := args.Get(0).(pagination.Page[model.LoanResponse])
	return result, args.Error(1)
}

func (m *LoanService) FindAll(ctx context.Context) ([]model.LoanResponse, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]model.LoanResponse)
	return loans, args.Error(1)
}

func (m *LoanService) FindOverdue(ctx context.Context) ([]model.LoanResponse, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]model.LoanResponse)
	return loans, args.Error(1)
}
