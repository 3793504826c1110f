package metrics

import (
	"context"
	"errors"

	"library-loan-service/internal/domain"
)

// LoanUseCase считает исходы операций над выдачами и делегирует их next.
type LoanUseCase struct {
	next    domain.LoanUseCase
	metrics *Metrics
}

// NewLoanUseCase оборачивает use case метриками.
func NewLoanUseCase(next domain.LoanUseCase, m *Metrics) domain.LoanUseCase {
	return &LoanUseCase{next: next, metrics: m}
}

func (uc *LoanUseCase) CreateLoan(ctx context.Context, userID, bookID int64) (*domain.Loan, error) {
	loan, err := uc.next.CreateLoan(ctx, userID, bookID)
	if uc.observe("create_loan", err) {
		uc.metrics.LoansCreated.Inc()
	}
	return loan, err
}

func (uc *LoanUseCase) ReturnBook(ctx context.Context, loanID int64) (*domain.Loan, error) {
	loan, err := uc.next.ReturnBook(ctx, loanID)
	if uc.observe("return_book", err) {
		uc.metrics.LoansReturned.Inc()
	}
	return loan, err
}

func (uc *LoanUseCase) DeleteLoan(ctx context.Context, loanID int64) error {
	err := uc.next.DeleteLoan(ctx, loanID)
	if uc.observe("delete_loan", err) {
		uc.metrics.LoansDeleted.Inc()
	}
	return err
}

func (uc *LoanUseCase) GetLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	return uc.next.GetLoanByID(ctx, loanID)
}

func (uc *LoanUseCase) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	return uc.next.ListLoans(ctx)
}

func (uc *LoanUseCase) ListActiveLoans(ctx context.Context) ([]*domain.Loan, error) {
	return uc.next.ListActiveLoans(ctx)
}

func (uc *LoanUseCase) ListLoansByUser(ctx context.Context, userID int64) ([]*domain.Loan, error) {
	return uc.next.ListLoansByUser(ctx, userID)
}

// observe возвращает true, если операция прошла успешно.
// Конфликты считаются по причине, прочие ошибки - по операции.
func (uc *LoanUseCase) observe(operation string, err error) bool {
	if err == nil {
		return true
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		uc.metrics.LoanConflicts.WithLabelValues(string(conflict.Reason)).Inc()
		return false
	}

	uc.metrics.LoanFailures.WithLabelValues(operation).Inc()
	return false
}
