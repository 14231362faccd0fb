// Package mocks holds testify mocks of the repository and service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/pagination"
)

type BookRepository struct {
	mock.Mock
}

func (m *BookRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	args := m.Called(ctx, book)
	return bookOrNil(args.Get(0)), args.Error(1)
}

func (m *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	return bookOrNil(args.Get(0)), args.Error(1)
}

func (m *BookRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	return bookOrNil(args.Get(0)), args.Error(1)
}

func (m *BookRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	args := m.Called(ctx, isbn)
	return bookOrNil(args.Get(0)), args.Error(1)
}

func (m *BookRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	args := m.Called(ctx, book)
	return bookOrNil(args.Get(0)), args.Error(1)
}

func (m *BookRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *BookRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BookRepository) Search(ctx context.Context, keyword string, page pagination.PageRequest) ([]model.Book, int64, error) {
	args := m.Called(ctx, keyword, page)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *BookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *BookRepository) FindByStatus(ctx context.Context, status model.Status) ([]model.Book, error) {
	args := m.Called(ctx, status)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *BookRepository) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[model.Status]int64)
	return counts, args.Error(1)
}

func bookOrNil(v interface{}) *model.Book {
	b, _ := v.(*model.Book)
	return b
}
