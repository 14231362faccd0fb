package service

import (
	"context"

	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/pagination"
)

// ServiceInterface is the business logic of lending.
type ServiceInterface interface {
	Create(ctx context.Context, req model.LoanRequest) (*model.LoanResponse, error)
	ReturnBook(ctx context.Context, loanID int64) (*model.LoanResponse, error)
	Search(ctx context.Context, keyword string, page pagination.PageRequest) (pagination.Page[model.LoanResponse], error)
	FindAll(ctx context.Context) ([]model.LoanResponse, error)
	FindOverdue(ctx context.Context) ([]model.LoanResponse, error)
}
