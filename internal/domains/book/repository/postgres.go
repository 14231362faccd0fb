package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/database"
)

const (
	tableBooks         = "books"
	constraintISBN     = "books_isbn_key"
	constraintLoanBook = "loans_book_id_fkey"
)

var bookColumns = []interface{}{"id", "title", "author", "isbn", "publication_year", "status", "created_at"}

var dialect = goqu.Dialect("postgres")

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) conn(ctx context.Context) database.DBTX {
	return database.Conn(ctx, r.pool)
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b      model.Book
		status string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationYear, &status, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Status = model.Status(status)
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (title, author, isbn, publication_year, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, author, isbn, publication_year, status, created_at
	`

	created, err := scanBook(r.conn(ctx).QueryRow(ctx, query,
		book.Title, book.Author, book.ISBN, book.PublicationYear, string(book.Status), book.CreatedAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err, constraintISBN) {
			return nil, model.ErrDuplicateISBN
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	return r.findOne(ctx, `
		SELECT id, title, author, isbn, publication_year, status, created_at
		FROM books WHERE id = $1
	`, id)
}

func (r *postgresRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Book, error) {
	return r.findOne(ctx, `
		SELECT id, title, author, isbn, publication_year, status, created_at
		FROM books WHERE id = $1
		FOR UPDATE
	`, id)
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return r.findOne(ctx, `
		SELECT id, title, author, isbn, publication_year, status, created_at
		FROM books WHERE isbn = $1
	`, isbn)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Book, error) {
	b, err := scanBook(r.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("query book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
		UPDATE books
		SET title = $2, author = $3, isbn = $4, publication_year = $5, status = $6
		WHERE id = $1
		RETURNING id, title, author, isbn, publication_year, status, created_at
	`

	updated, err := scanBook(r.conn(ctx).QueryRow(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN, book.PublicationYear, string(book.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		if database.IsUniqueViolation(err, constraintISBN) {
			return nil, model.ErrDuplicateISBN
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE books SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update book status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err, constraintLoanBook) {
			return model.ErrBookHasLoans
		}
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// keywordFilter matches title or author, case-insensitively, as a literal substring.
func keywordFilter(keyword string) goqu.Expression {
	pattern := utils.ContainsPattern(keyword)
	if pattern == "" {
		return nil
	}
	return goqu.Or(
		goqu.C("title").ILike(pattern),
		goqu.C("author").ILike(pattern),
	)
}

// buildSearchQuery renders the page query and its count query.
func buildSearchQuery(keyword string, page pagination.PageRequest) (string, []interface{}, string, []interface{}, error) {
	column, ok := model.SortColumn(page.SortBy)
	if !ok {
		return "", nil, "", nil, model.ErrInvalidSortField
	}

	selectDS := dialect.From(tableBooks).Prepared(true).Select(bookColumns...)
	countDS := dialect.From(tableBooks).Prepared(true).Select(goqu.COUNT("*"))
	if filter := keywordFilter(keyword); filter != nil {
		selectDS = selectDS.Where(filter)
		countDS = countDS.Where(filter)
	}

	order := goqu.I(column).Asc()
	if page.Descending() {
		order = goqu.I(column).Desc()
	}
	selectDS = selectDS.Order(order)
	if column != "id" {
		// stable paging when the sort column has duplicates
		selectDS = selectDS.OrderAppend(goqu.I("id").Asc())
	}
	selectDS = selectDS.Limit(uint(page.Size)).Offset(page.Offset())

	selectSQL, selectArgs, err := selectDS.ToSQL()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("build search query: %w", err)
	}
	countSQL, countArgs, err := countDS.ToSQL()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("build count query: %w", err)
	}
	return selectSQL, selectArgs, countSQL, countArgs, nil
}

func (r *postgresRepository) Search(ctx context.Context, keyword string, page pagination.PageRequest) ([]model.Book, int64, error) {
	selectSQL, selectArgs, countSQL, countArgs, err := buildSearchQuery(keyword, page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	if total == 0 {
		return []model.Book{}, 0, nil
	}

	rows, err := r.conn(ctx).Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search books: %w", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, title, author, isbn, publication_year, status, created_at
		FROM books ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) FindByStatus(ctx context.Context, status model.Status) ([]model.Book, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, title, author, isbn, publication_year, status, created_at
		FROM books WHERE status = $1 ORDER BY title, id
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list books by status: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT status, COUNT(*) FROM books GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count books by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int64, len(model.Statuses))
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan book count: %w", err)
		}
		counts[model.Status(status)] = n
	}
	return counts, rows.Err()
}
