package mocks

import (
	"context"

	"library-loan-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// LoanUseCase is a mock type for the domain.LoanUseCase type
type LoanUseCase struct {
	mock.Mock
}

func (_m *LoanUseCase) CreateLoan(ctx context.Context, userID, bookID int64) (*domain.Loan, error) {
	ret := _m.Called(ctx, userID, bookID)
	return loanArg(ret, 0), ret.Error(1)
}

func (_m *LoanUseCase) ReturnBook(ctx context.Context, loanID int64) (*domain.Loan, error) {
	ret := _m.Called(ctx, loanID)
	return loanArg(ret, 0), ret.Error(1)
}

func (_m *LoanUseCase) DeleteLoan(ctx context.Context, loanID int64) error {
	ret := _m.Called(ctx, loanID)
	return ret.Error(0)
}

func (_m *LoanUseCase) GetLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	ret := _m.Called(ctx, loanID)
	return loanArg(ret, 0), ret.Error(1)
}

func (_m *LoanUseCase) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	ret := _m.Called(ctx)
	return loansArg(ret, 0), ret.Error(1)
}

func (_m *LoanUseCase) ListActiveLoans(ctx context.Context) ([]*domain.Loan, error) {
	ret := _m.Called(ctx)
	return loansArg(ret, 0), ret.Error(1)
}

func (_m *LoanUseCase) ListLoansByUser(ctx context.Context, userID int64) ([]*domain.Loan, error) {
	ret := _m.Called(ctx, userID)
	return loansArg(ret, 0), ret.Error(1)
}

func loanArg(ret mock.Arguments, i int) *domain.Loan {
	if ret.Get(i) == nil {
		return nil
	}
	return ret.Get(i).(*domain.Loan)
}
