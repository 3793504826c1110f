package domain

import (
	"context"
	"time"
)

// LoanUseCase определяет жизненный цикл выдачи книг.
type LoanUseCase interface {
	CreateLoan(ctx context.Context, userID, bookID int64) (*Loan, error)
	ReturnBook(ctx context.Context, loanID int64) (*Loan, error)
	DeleteLoan(ctx context.Context, loanID int64) error
	// GetLoanByID возвращает nil без ошибки, если выдачи нет.
	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)
	ListLoans(ctx context.Context) ([]*Loan, error)
	ListActiveLoans(ctx context.Context) ([]*Loan, error)
	ListLoansByUser(ctx context.Context, userID int64) ([]*Loan, error)
}

// LoanPolicy задает ограничения выдачи по роли.
// Для неизвестной роли возвращается *ConfigurationError.
type LoanPolicy interface {
	MaxActiveLoans(role Role) (int, error)
	LoanPeriod(role Role) (time.Duration, error)
}

// Clock - источник текущего времени.
type Clock interface {
	Now() time.Time
}
