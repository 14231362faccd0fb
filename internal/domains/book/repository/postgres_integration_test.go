//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database/dbtest"
	"library-catalog/internal/shared/pagination"
	"library-catalog/pkg/database"
)

var jan1 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newBook(title, isbn string) *model.Book {
	return &model.Book{
		Title:           title,
		Author:          "Robert C. Martin",
		ISBN:            isbn,
		PublicationYear: 2008,
		Status:          model.StatusAvailable,
		CreatedAt:       time.Now().UTC(),
	}
}

func Test_Postgres_Create_ReturnsStoredBook(t *testing.T) {
	// setup
	repo := NewPostgresRepository(dbtest.Open(t))
	ctx := context.Background()

	// act
	created, err := repo.Create(ctx, newBook("Clean Code", "9780132350884"))

	// assert
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.StatusAvailable, created.Status)
	found, err := repo.FindByISBN(ctx, "9780132350884")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func Test_Postgres_Create_DuplicateISBN(t *testing.T) {
	// setup
	repo := NewPostgresRepository(dbtest.Open(t))
	ctx := context.Background()
	_, err := repo.Create(ctx, newBook("Clean Code", "9780132350884"))
	require.NoError(t, err)

	// act
	_, err = repo.Create(ctx, newBook("Clean Code (copy)", "9780132350884"))

	// assert
	assert.ErrorIs(t, err, model.ErrDuplicateISBN)
}

func Test_Postgres_Update_ToForeignISBN(t *testing.T) {
	// setup
	pool := dbtest.Open(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	dbtest.InsertBook(t, pool, "Clean Code", "9780132350884")
	otherID := dbtest.InsertBook(t, pool, "Refactoring", "9780134757599")
	other, err := repo.FindByID(ctx, otherID)
	require.NoError(t, err)
	other.ISBN = "9780132350884"

	// act
	_, err = repo.Update(ctx, other)

	// assert
	assert.ErrorIs(t, err, model.ErrDuplicateISBN)
}

func Test_Postgres_Delete_BookWithLoanIsBlocked(t *testing.T) {
	// setup
	pool := dbtest.Open(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	bookID := dbtest.InsertBook(t, pool, "Clean Code", "9780132350884")
	dbtest.InsertLoan(t, pool, bookID, jan1, &jan1)

	// act
	err := repo.Delete(ctx, bookID)

	// assert
	assert.ErrorIs(t, err, model.ErrBookHasLoans)
	_, err = repo.FindByID(ctx, bookID)
	assert.NoError(t, err)
}

func Test_Postgres_Delete_Missing(t *testing.T) {
	// act
	err := NewPostgresRepository(dbtest.Open(t)).Delete(context.Background(), 42)

	// assert
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func Test_Postgres_Search_KeywordMatchesTitleOrAuthor(t *testing.T) {
	// setup
	pool := dbtest.Open(t)
	repo := NewPostgresRepository(pool)
	dbtest.InsertBook(t, pool, "Clean Code", "9780132350884")
	dbtest.InsertBook(t, pool, "The Clean Coder", "9780137081073")
	dbtest.InsertBook(t, pool, "Refactoring", "9780134757599")

	// act
	books, total, err := repo.Search(context.Background(), "clean", pagination.NewPageRequest(0, 1, "title", "desc"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, books, 1)
	assert.Equal(t, "The Clean Coder", books[0].Title)
}

func Test_Postgres_Search_KeywordIsLiteral(t *testing.T) {
	// setup
	pool := dbtest.Open(t)
	dbtest.InsertBook(t, pool, "Clean Code", "9780132350884")

	// act
	_, total, err := NewPostgresRepository(pool).Search(context.Background(), "%", pagination.NewPageRequest(0, 10, "id", "ASC"))

	// assert
	require.NoError(t, err)
	assert.Zero(t, total)
}

func Test_Postgres_FindByIDForUpdate_InsideTransaction(t *testing.T) {
	// setup
	pool := dbtest.Open(t)
	repo := NewPostgresRepository(pool)
	bookID := dbtest.InsertBook(t, pool, "Clean Code", "9780132350884")

	// act
	err := database.NewTransactor(pool).WithinTransaction(context.Background(), func(ctx context.Context) error {
		book, err := repo.FindByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		return repo.UpdateStatus(ctx, book.ID, model.StatusBorrowed)
	})

	// assert
	require.NoError(t, err)
	book, err := repo.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBorrowed, book.Status)
}

func Test_Postgres_CountByStatus(t *testing.T) {
	// setup
	pool := dbtest.Open(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	dbtest.InsertBook(t, pool, "Clean Code", "9780132350884")
	borrowedID := dbtest.InsertBook(t, pool, "Refactoring", "9780134757599")
	require.NoError(t, repo.UpdateStatus(ctx, borrowedID, model.StatusBorrowed))

	// act
	counts, err := repo.CountByStatus(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.StatusAvailable])
	assert.Equal(t, int64(1), counts[model.StatusBorrowed])
	assert.Zero(t, counts[model.StatusReserved])
}
