package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/pagination"
)

type BookService struct {
	mock.Mock
}

func (m *BookService) Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.BookResponse)
	return resp, args.Error(1)
}

func (m *BookService) FindByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*model.BookResponse)
	return resp, args.Error(1)
}

func (m *BookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*model.BookResponse)
	return resp, args.Error(1)
}

func (m *BookService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BookService) Search(ctx context.Context, keyword string, page pagination.PageRequest) (pagination.Page[model.BookResponse], error) {
	args := m.Called(ctx, keyword, page)
	result, _ := args.Get(0).(pagination.Page[model.BookResponse])
	return result, args.Error(1)
}

func (m *BookService) GetLibraryStats(ctx context.Context) (*model.LibraryStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.LibraryStats)
	return stats, args.Error(1)
}

func (m *BookService) FindByStatus(ctx context.Context, status model.Status) ([]model.BookResponse, error) {
	args := m.Called(ctx, status)
	books, _ := args.Get(0).([]model.BookResponse)
	return books, args.Error(1)
}

func (m *BookService) FindAll(ctx context.Context) ([]model.BookResponse, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]model.BookResponse)
	return books, args.Error(1)
}

// ExportCSV writes the second return value, when it is a string, to w.
func (m *BookService) ExportCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if len(args) > 1 {
		if body, ok := args.Get(1).(string); ok {
			_, _ = io.WriteString(w, body)
		}
	}
	return args.Error(0)
}

func (m *BookService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).(*excelize.File)
	return f, args.Error(1)
}
