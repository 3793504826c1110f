// Package mocks содержит моки контрактов domain для тестов на testify/mock.
package mocks

import (
	"context"

	"library-loan-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock type for the domain.UserRepository type
type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	ret := _m.Called(ctx, userID)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

// BookRepository is a mock type for the domain.BookRepository type
type BookRepository struct {
	mock.Mock
}

func (_m *BookRepository) GetByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	ret := _m.Called(ctx, bookID)

	var r0 *domain.Book
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Book)
	}
	return r0, ret.Error(1)
}

func (_m *BookRepository) SetAvailability(ctx context.Context, bookID int64, available bool) error {
	ret := _m.Called(ctx, bookID, available)
	return ret.Error(0)
}

// LoanRepository is a mock type for the domain.LoanRepository type
type LoanRepository struct {
	mock.Mock
}

func (_m *LoanRepository) Insert(ctx context.Context, loan *domain.Loan) (int64, error) {
	ret := _m.Called(ctx, loan)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *LoanRepository) Update(ctx context.Context, loan *domain.Loan, from domain.LoanState) error {
	ret := _m.Called(ctx, loan, from)
	return ret.Error(0)
}

func (_m *LoanRepository) GetByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	ret := _m.Called(ctx, loanID)

	var r0 *domain.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Loan)
	}
	return r0, ret.Error(1)
}

func (_m *LoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	ret := _m.Called(ctx)
	return loansArg(ret, 0), ret.Error(1)
}

func (_m *LoanRepository) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	ret := _m.Called(ctx)
	return loansArg(ret, 0), ret.Error(1)
}

func (_m *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Loan, error) {
	ret := _m.Called(ctx, userID)
	return loansArg(ret, 0), ret.Error(1)
}

func (_m *LoanRepository) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	ret := _m.Called(ctx, userID)
	return ret.Int(0), ret.Error(1)
}

func (_m *LoanRepository) ExistsActiveBorrowedForBook(ctx context.Context, bookID int64) (bool, error) {
	ret := _m.Called(ctx, bookID)
	return ret.Bool(0), ret.Error(1)
}

// TxStores is a mock type for the domain.TxStores type
type TxStores struct {
	mock.Mock
}

func (_m *TxStores) Books() domain.BookRepository {
	ret := _m.Called()
	return ret.Get(0).(domain.BookRepository)
}

func (_m *TxStores) Loans() domain.LoanRepository {
	ret := _m.Called()
	return ret.Get(0).(domain.LoanRepository)
}

// NewTxStores возвращает TxStores, отдающий переданные моки хранилищ.
func NewTxStores(books *BookRepository, loans *LoanRepository) *TxStores {
	stores := &TxStores{}
	stores.On("Books").Return(books).Maybe()
	stores.On("Loans").Return(loans).Maybe()
	return stores
}

// TxFunc - сигнатура, которую Transactor.WithinTx принимает в Return.
type TxFunc = func(ctx context.Context, fn func(ctx context.Context, stores domain.TxStores) error) error

// Transactor is a mock type for the domain.Transactor type
type Transactor struct {
	mock.Mock
}

func (_m *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores domain.TxStores) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(TxFunc); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// NewTransactor возвращает Transactor, который выполняет fn на переданных stores.
func NewTransactor(stores domain.TxStores) *Transactor {
	tx := &Transactor{}
	tx.On("WithinTx", mock.Anything, mock.Anything).Return(TxFunc(func(ctx context.Context, fn func(ctx context.Context, stores domain.TxStores) error) error {
		return fn(ctx, stores)
	}))
	return tx
}

func loansArg(ret mock.Arguments, i int) []*domain.Loan {
	if ret.Get(i) == nil {
		return nil
	}
	return ret.Get(i).([]*domain.Loan)
}
