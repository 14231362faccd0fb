package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	bookmodel "library-catalog/internal/domains/book/model"
	bookrepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/loan/model"
	"library-catalog/internal/domains/loan/repository"
	"library-catalog/internal/shared/pagination"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/database"
)

type LoanService struct {
	repo  repository.RepositoryInterface
	books bookrepo.RepositoryInterface
	tx    database.Transactor
	cache cache.Cache
	now   func() time.Time
}

func NewService(
	repo repository.RepositoryInterface,
	books bookrepo.RepositoryInterface,
	tx database.Transactor,
	cache cache.Cache,
) ServiceInterface {
	return &LoanService{
		repo:  repo,
		books: books,
		tx:    tx,
		cache: cache,
		now:   time.Now,
	}
}

// Create lends an AVAILABLE book. The book row stays locked from the
// availability check until the loan is stored and the book is BORROWED.
func (s *LoanService) Create(ctx context.Context, req model.LoanRequest) (*model.LoanResponse, error) {
	loanDate, dueDate, err := req.Dates()
	if err != nil {
		return nil, err
	}

	today := utils.Today(s.now())
	if loanDate == nil {
		loanDate = &today
	}
	if dueDate == nil {
		d := model.DueDateFor(*loanDate)
		dueDate = &d
	}
	if dueDate.Before(*loanDate) {
		return nil, model.ErrDueBeforeLoan
	}

	var created *model.Loan
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		book, err := s.books.FindByIDForUpdate(ctx, req.BookID)
		if err != nil {
			return err
		}
		if book.Status != bookmodel.StatusAvailable {
			return bookmodel.ErrBookNotAvailable
		}

		created, err = s.repo.Create(ctx, &model.Loan{
			BookID:        book.ID,
			BorrowerName:  req.BorrowerName,
			BorrowerEmail: req.BorrowerEmail,
			LoanDate:      *loanDate,
			DueDate:       *dueDate,
			CreatedAt:     s.now().UTC(),
		})
		if err != nil {
			return err
		}
		if created.BookTitle == "" {
			created.BookTitle = book.Title
		}

		return s.books.UpdateStatus(ctx, book.ID, bookmodel.StatusBorrowed)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	log.Info().
		Int64("loan_id", created.ID).
		Int64("book_id", created.BookID).
		Str("due_date", created.DueDate.Format(utils.DateLayout)).
		Msg("loan created")

	resp := model.ToResponse(*created)
	return &resp, nil
}

// ReturnBook closes an outstanding loan today and makes its book AVAILABLE again.
func (s *LoanService) ReturnBook(ctx context.Context, loanID int64) (*model.LoanResponse, error) {
	var returned *model.Loan
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		loan, err := s.repo.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if !loan.IsActive() {
			return model.ErrLoanAlreadyReturned
		}

		returned, err = s.repo.MarkReturned(ctx, loan.ID, utils.Today(s.now()))
		if err != nil {
			return err
		}

		return s.books.UpdateStatus(ctx, loan.BookID, bookmodel.StatusAvailable)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	log.Info().Int64("loan_id", returned.ID).Int64("book_id", returned.BookID).Msg("loan returned")

	resp := model.ToResponse(*returned)
	return &resp, nil
}

func (s *LoanService) Search(ctx context.Context, keyword string, page pagination.PageRequest) (pagination.Page[model.LoanResponse], error) {
	if _, ok := model.SortColumn(page.SortBy); !ok {
		return pagination.Page[model.LoanResponse]{}, bookmodel.ErrInvalidSortField
	}

	loans, total, err := s.repo.Search(ctx, keyword, page)
	if err != nil {
		return pagination.Page[model.LoanResponse]{}, err
	}
	return pagination.NewPage(model.ToResponses(loans), page, total), nil
}

func (s *LoanService) FindAll(ctx context.Context) ([]model.LoanResponse, error) {
	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(loans), nil
}

func (s *LoanService) FindOverdue(ctx context.Context) ([]model.LoanResponse, error) {
	loans, err := s.repo.FindOverdue(ctx, utils.Today(s.now()))
	if err != nil {
		return nil, err
	}
	return model.ToResponses(loans), nil
}

func (s *LoanService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, bookmodel.StatsCacheKey); err != nil {
		log.Warn().Err(err).Str("key", bookmodel.StatsCacheKey).Msg("cache DELETE error")
	}
}
