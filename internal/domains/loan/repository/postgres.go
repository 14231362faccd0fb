package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/database"
)

const (
	constraintActiveLoan = "loans_one_active_per_book"
	constraintLoanBook   = "loans_book_id_fkey"
)

var dialect = goqu.Dialect("postgres")

var loanColumns = []interface{}{
	"l.id", "l.book_id", goqu.I("b.title").As("book_title"), "l.borrower_name", "l.borrower_email",
	"l.loan_date", "l.due_date", "l.return_date", "l.created_at",
}

const selectLoan = `
	SELECT l.id, l.book_id, b.title, l.borrower_name, l.borrower_email,
	       l.loan_date, l.due_date, l.return_date, l.created_at
	FROM loans l
	JOIN books b ON b.id = l.book_id
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) conn(ctx context.Context) database.DBTX {
	return database.Conn(ctx, r.pool)
}

func scanLoan(row pgx.Row) (*model.Loan, error) {
	var l model.Loan
	err := row.Scan(
		&l.ID,
		&l.BookID,
		&l.BookTitle,
		&l.BorrowerName,
		&l.BorrowerEmail,
		&l.LoanDate,
		&l.DueDate,
		&l.ReturnDate,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLoans(rows pgx.Rows) ([]model.Loan, error) {
	defer rows.Close()

	loans := make([]model.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

func (r *postgresRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	query := `
		INSERT INTO loans (book_id, borrower_name, borrower_email, loan_date, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, book_id, (SELECT title FROM books WHERE books.id = loans.book_id),
		          borrower_name, borrower_email, loan_date, due_date, return_date, created_at
	`

	created, err := scanLoan(r.conn(ctx).QueryRow(ctx, query,
		loan.BookID, loan.BorrowerName, loan.BorrowerEmail, loan.LoanDate, loan.DueDate, loan.CreatedAt,
	))
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, constraintActiveLoan):
			return nil, bookmodel.ErrBookNotAvailable
		case database.IsForeignKeyViolation(err, constraintLoanBook):
			return nil, bookmodel.ErrBookNotFound
		}
		return nil, fmt.Errorf("insert loan: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Loan, error) {
	return r.findOne(ctx, selectLoan+` WHERE l.id = $1`, id)
}

func (r *postgresRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Loan, error) {
	return r.findOne(ctx, selectLoan+` WHERE l.id = $1 FOR UPDATE OF l`, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Loan, error) {
	l, err := scanLoan(r.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, fmt.Errorf("query loan: %w", err)
	}
	return l, nil
}

func (r *postgresRepository) MarkReturned(ctx context.Context, id int64, returnDate time.Time) (*model.Loan, error) {
	query := `
		UPDATE loans l
		SET return_date = $2
		FROM books b
		WHERE l.id = $1 AND b.id = l.book_id
		RETURNING l.id, l.book_id, b.title, l.borrower_name, l.borrower_email,
		          l.loan_date, l.due_date, l.return_date, l.created_at
	`

	l, err := scanLoan(r.conn(ctx).QueryRow(ctx, query, id, returnDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, fmt.Errorf("mark loan returned: %w", err)
	}
	return l, nil
}

// keywordFilter matches borrower name, borrower email or book title.
func keywordFilter(keyword string) goqu.Expression {
	pattern := utils.ContainsPattern(keyword)
	if pattern == "" {
		return nil
	}
	return goqu.Or(
		goqu.I("l.borrower_name").ILike(pattern),
		goqu.I("l.borrower_email").ILike(pattern),
		goqu.I("b.title").ILike(pattern),
	)
}

func buildSearchQuery(keyword string, page pagination.PageRequest) (string, []interface{}, string, []interface{}, error) {
	column, ok := model.SortColumn(page.SortBy)
	if !ok {
		return "", nil, "", nil, bookmodel.ErrInvalidSortField
	}

	from := dialect.From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Prepared(true)

	selectDS := from.Select(loanColumns...)
	countDS := from.Select(goqu.COUNT("*"))
	if filter := keywordFilter(keyword); filter != nil {
		selectDS = selectDS.Where(filter)
		countDS = countDS.Where(filter)
	}

	order := goqu.I(column).Asc()
	if page.Descending() {
		order = goqu.I(column).Desc()
	}
	selectDS = selectDS.Order(order)
	if column != "l.id" {
		selectDS = selectDS.OrderAppend(goqu.I("l.id").Asc())
	}
	selectDS = selectDS.Limit(uint(page.Size)).Offset(page.Offset())

	selectSQL, selectArgs, err := selectDS.ToSQL()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("build loan search query: %w", err)
	}
	countSQL, countArgs, err := countDS.ToSQL()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("build loan count query: %w", err)
	}
	return selectSQL, selectArgs, countSQL, countArgs, nil
}

func (r *postgresRepository) Search(ctx context.Context, keyword string, page pagination.PageRequest) ([]model.Loan, int64, error) {
	selectSQL, selectArgs, countSQL, countArgs, err := buildSearchQuery(keyword, page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count loans: %w", err)
	}
	if total == 0 {
		return []model.Loan{}, 0, nil
	}

	rows, err := r.conn(ctx).Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search loans: %w", err)
	}
	loans, err := collectLoans(rows)
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Loan, error) {
	rows, err := r.conn(ctx).Query(ctx, selectLoan+` ORDER BY l.id`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return collectLoans(rows)
}

func (r *postgresRepository) FindOverdue(ctx context.Context, today time.Time) ([]model.Loan, error) {
	rows, err := r.conn(ctx).Query(ctx,
		selectLoan+` WHERE l.return_date IS NULL AND l.due_date < $1 ORDER BY l.due_date, l.id`,
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("list overdue loans: %w", err)
	}
	return collectLoans(rows)
}

func (r *postgresRepository) ExistsByBookID(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE book_id = $1)`, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check loans of book: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE return_date IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active loans: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE return_date IS NULL AND due_date < $1`, today,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count overdue loans: %w", err)
	}
	return n, nil
}
