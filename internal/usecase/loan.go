package usecase

import (
	"context"
	"errors"
	"time"

	"library-loan-service/internal/domain"
)

// LoanUseCase реализует жизненный цикл выдачи: создание, возврат и мягкое удаление.
type LoanUseCase struct {
	userRepo domain.UserRepository
	bookRepo domain.BookRepository
	loanRepo domain.LoanRepository
	tx       domain.Transactor
	policy   domain.LoanPolicy
	clock    domain.Clock
}

// NewLoanUseCase создает новый экземпляр LoanUseCase.
func NewLoanUseCase(
	userRepo domain.UserRepository,
	bookRepo domain.BookRepository,
	loanRepo domain.LoanRepository,
	tx domain.Transactor,
	policy domain.LoanPolicy,
	clock domain.Clock,
) domain.LoanUseCase {
	return &LoanUseCase{
		userRepo: userRepo,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		tx:       tx,
		policy:   policy,
		clock:    clock,
	}
}

// CreateLoan выдает книгу пользователю.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, userID, bookID int64) (*domain.Loan, error) {
	// Валидация входных данных
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	if bookID <= 0 {
		return nil, domain.ErrInvalidBookID
	}

	// 1. Пользователь существует и активен
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.NewNotFound(domain.EntityUser, userID)
	}

	// 2. Книга существует и активна
	book, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.Active {
		return nil, domain.NewNotFound(domain.EntityBook, bookID)
	}

	// 3. Книга доступна
	if !book.IsAvailable {
		return nil, domain.NewConflict(domain.ReasonBookUnavailable, domain.EntityBook, bookID)
	}
	held, err := uc.loanRepo.ExistsActiveBorrowedForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, domain.NewConflict(domain.ReasonBookUnavailable, domain.EntityBook, bookID)
	}

	// 4. Лимит активных выдач по роли
	maxLoans, err := uc.policy.MaxActiveLoans(user.Role)
	if err != nil {
		return nil, err
	}
	period, err := uc.policy.LoanPeriod(user.Role)
	if err != nil {
		return nil, err
	}
	active, err := uc.loanRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active >= maxLoans {
		return nil, domain.NewConflict(domain.ReasonLoanLimitExceeded, domain.EntityUser, userID)
	}

	loanDate := uc.clock.Now()
	loan := &domain.Loan{
		UserID:             userID,
		BookID:             bookID,
		UserName:           user.Name,
		BookTitle:          book.Title,
		LoanDate:           loanDate,
		ExpectedReturnDate: loanDate.Add(period),
		Status:             domain.LoanStatusBorrowed,
		Active:             true,
	}

	// 5. Флаг доступности, запись выдачи и перепроверка лимита - одна транзакция
	err = uc.tx.WithinTx(ctx, func(ctx context.Context, stores domain.TxStores) error {
		if err := stores.Books().SetAvailability(ctx, bookID, false); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrNotFound) {
				return domain.NewConflict(domain.ReasonBookUnavailable, domain.EntityBook, bookID)
			}
			return err
		}

		id, err := stores.Loans().Insert(ctx, loan)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateBorrow) {
				return domain.NewConflict(domain.ReasonBookUnavailable, domain.EntityBook, bookID)
			}
			return err
		}
		loan.ID = id

		count, err := stores.Loans().CountActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if count > maxLoans {
			return domain.NewConflict(domain.ReasonLoanLimitExceeded, domain.EntityUser, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

// ReturnBook отмечает выдачу возвращенной и освобождает книгу.
func (uc *LoanUseCase) ReturnBook(ctx context.Context, loanID int64) (*domain.Loan, error) {
	if loanID <= 0 {
		return nil, domain.ErrInvalidLoanID
	}

	// 1. Выдача существует и не удалена
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || !loan.Active {
		return nil, domain.NewNotFound(domain.EntityLoan, loanID)
	}

	// 2. Книга еще не возвращена
	if loan.Status != domain.LoanStatusBorrowed {
		return nil, domain.NewConflict(domain.ReasonAlreadyReturned, domain.EntityLoan, loanID)
	}

	from := loan.State()
	returned := *loan
	returnDate := uc.clock.Now()
	returned.Status = domain.LoanStatusReturned
	returned.ReturnDate = &returnDate

	// 3. Переход Borrowed -> Returned и освобождение книги
	err = uc.tx.WithinTx(ctx, func(ctx context.Context, stores domain.TxStores) error {
		if err := stores.Loans().Update(ctx, &returned, from); err != nil {
			if errors.Is(err, domain.ErrStaleLoan) {
				return uc.staleLoanConflict(ctx, stores, loanID)
			}
			return err
		}
		return releaseBook(ctx, stores, loan.BookID)
	})
	if err != nil {
		return nil, err
	}

	return &returned, nil
}

// DeleteLoan помечает выдачу неактивной. Статус не меняется,
// но книга, удерживаемая выдачей, освобождается.
func (uc *LoanUseCase) DeleteLoan(ctx context.Context, loanID int64) error {
	if loanID <= 0 {
		return domain.ErrInvalidLoanID
	}

	// 1. Выдача существует
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan == nil {
		return domain.NewNotFound(domain.EntityLoan, loanID)
	}

	// 2. Выдача еще активна
	if !loan.Active {
		return domain.NewConflict(domain.ReasonAlreadyInactive, domain.EntityLoan, loanID)
	}

	from := loan.State()
	deleted := *loan
	deleted.Active = false

	return uc.tx.WithinTx(ctx, func(ctx context.Context, stores domain.TxStores) error {
		err := stores.Loans().Update(ctx, &deleted, from)
		if errors.Is(err, domain.ErrStaleLoan) {
			// параллельный возврат мог сменить статус: удаление остается допустимым
			current, getErr := stores.Loans().GetByID(ctx, loanID)
			if getErr != nil {
				return getErr
			}
			if current == nil {
				return domain.NewNotFound(domain.EntityLoan, loanID)
			}
			if !current.Active {
				return domain.NewConflict(domain.ReasonAlreadyInactive, domain.EntityLoan, loanID)
			}
			from = current.State()
			deleted = *current
			deleted.Active = false
			err = stores.Loans().Update(ctx, &deleted, from)
			if errors.Is(err, domain.ErrStaleLoan) {
				return domain.NewConflict(domain.ReasonAlreadyInactive, domain.EntityLoan, loanID)
			}
		}
		if err != nil {
			return err
		}

		if from.HoldsBook() {
			return releaseBook(ctx, stores, loan.BookID)
		}
		return nil
	})
}

// staleLoanConflict определяет, что именно успел сделать параллельный запрос.
func (uc *LoanUseCase) staleLoanConflict(ctx context.Context, stores domain.TxStores, loanID int64) error {
	current, err := stores.Loans().GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if current == nil || !current.Active {
		return domain.NewNotFound(domain.EntityLoan, loanID)
	}
	return domain.NewConflict(domain.ReasonAlreadyReturned, domain.EntityLoan, loanID)
}

// releaseBook возвращает книге доступность. Неактивная или уже доступная книга не ошибка.
func releaseBook(ctx context.Context, stores domain.TxStores, bookID int64) error {
	err := stores.Books().SetAvailability(ctx, bookID, true)
	if err == nil || errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// GetLoanByID возвращает выдачу или nil, если ее нет.
func (uc *LoanUseCase) GetLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	if loanID <= 0 {
		return nil, domain.ErrInvalidLoanID
	}
	return uc.loanRepo.GetByID(ctx, loanID)
}

func (uc *LoanUseCase) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	return uc.loanRepo.List(ctx)
}

// ListActiveLoans возвращает невозвращенные и неудаленные выдачи.
func (uc *LoanUseCase) ListActiveLoans(ctx context.Context) ([]*domain.Loan, error) {
	return uc.loanRepo.ListActive(ctx)
}

func (uc *LoanUseCase) ListLoansByUser(ctx context.Context, userID int64) ([]*domain.Loan, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return uc.loanRepo.ListByUser(ctx, userID)
}

// SystemClock - часы на основе time.Now в UTC.
type SystemClock struct{}

// Now обрезает время до микросекунд: точнее PostgreSQL не хранит.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
