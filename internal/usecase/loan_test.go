package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-loan-service/internal/domain"
	"library-loan-service/internal/mocks"
	"library-loan-service/internal/policy"
	"library-loan-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type loanFixture struct {
	users  *mocks.UserRepository
	books  *mocks.BookRepository
	loans  *mocks.LoanRepository
	txBook *mocks.BookRepository
	txLoan *mocks.LoanRepository
	tx     *mocks.Transactor
	uc     domain.LoanUseCase
}

func newLoanFixture() *loanFixture {
	f := &loanFixture{
		users:  &mocks.UserRepository{},
		books:  &mocks.BookRepository{},
		loans:  &mocks.LoanRepository{},
		txBook: &mocks.BookRepository{},
		txLoan: &mocks.LoanRepository{},
	}
	f.tx = mocks.NewTransactor(mocks.NewTxStores(f.txBook, f.txLoan))
	f.uc = usecase.NewLoanUseCase(f.users, f.books, f.loans, f.tx, policy.Default(), fixedClock{now: jan1})
	return f
}

func (f *loanFixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.books.AssertExpectations(t)
	f.loans.AssertExpectations(t)
	f.txBook.AssertExpectations(t)
	f.txLoan.AssertExpectations(t)
}

func activeUser(id int64, role domain.Role) *domain.User {
	return &domain.User{ID: id, Name: "Alice", Role: role, Active: true}
}

func availableBook(id int64) *domain.Book {
	return &domain.Book{ID: id, Title: "Dune", IsAvailable: true, Active: true}
}

func TestLoanUseCase_CreateLoan_Success(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleCommon), nil)
	f.books.On("GetByID", ctx, int64(7)).Return(availableBook(7), nil)
	f.loans.On("ExistsActiveBorrowedForBook", ctx, int64(7)).Return(false, nil)
	f.loans.On("CountActiveByUser", ctx, int64(1)).Return(2, nil)
	f.txBook.On("SetAvailability", ctx, int64(7), false).Return(nil)
	f.txLoan.On("Insert", ctx, mock.AnythingOfType("*domain.Loan")).Return(int64(42), nil)
	f.txLoan.On("CountActiveByUser", ctx, int64(1)).Return(3, nil)

	loan, err := f.uc.CreateLoan(ctx, 1, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(42), loan.ID)
	assert.Equal(t, domain.StateBorrowed, loan.State())
	assert.Equal(t, "Dune", loan.BookTitle)
	assert.Equal(t, "Alice", loan.UserName)
	assert.True(t, loan.LoanDate.Equal(jan1))
	assert.True(t, loan.ExpectedReturnDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, loan.ReturnDate)
	f.assertExpectations(t)
}

func TestLoanUseCase_CreateLoan_AdminPeriod(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleAdmin), nil)
	f.books.On("GetByID", ctx, int64(7)).Return(availableBook(7), nil)
	f.loans.On("ExistsActiveBorrowedForBook", ctx, int64(7)).Return(false, nil)
	f.loans.On("CountActiveByUser", ctx, int64(1)).Return(9, nil)
	f.txBook.On("SetAvailability", ctx, int64(7), false).Return(nil)
	f.txLoan.On("Insert", ctx, mock.AnythingOfType("*domain.Loan")).Return(int64(1), nil)
	f.txLoan.On("CountActiveByUser", ctx, int64(1)).Return(10, nil)

	loan, err := f.uc.CreateLoan(ctx, 1, 7)

	require.NoError(t, err)
	assert.True(t, loan.ExpectedReturnDate.Equal(jan1.AddDate(0, 0, 30)))
}

func TestLoanUseCase_CreateLoan_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	testCases := []struct {
		name     string
		userID   int64
		bookID   int64
		expected error
	}{
		{"Zero user ID", 0, 1, domain.ErrInvalidUserID},
		{"Negative book ID", 1, -3, domain.ErrInvalidBookID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loan, err := f.uc.CreateLoan(ctx, tc.userID, tc.bookID)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, loan)
		})
	}
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything, mock.Anything)
}

func TestLoanUseCase_CreateLoan_PreconditionOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user wins over everything", func(t *testing.T) {
		f := newLoanFixture()
		f.users.On("GetByID", ctx, int64(1)).Return(nil, domain.NewNotFound(domain.EntityUser, 1))

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.EntityUser, notFound.Entity)
		f.books.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("inactive user is not found", func(t *testing.T) {
		f := newLoanFixture()
		user := activeUser(1, domain.RoleCommon)
		user.Active = false
		f.users.On("GetByID", ctx, int64(1)).Return(user, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.EntityUser, notFound.Entity)
		assert.Equal(t, int64(1), notFound.ID)
	})

	t.Run("inactive book is not found", func(t *testing.T) {
		f := newLoanFixture()
		book := availableBook(7)
		book.Active = false
		f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleCommon), nil)
		f.books.On("GetByID", ctx, int64(7)).Return(book, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.EntityBook, notFound.Entity)
	})

	t.Run("unavailable book wins over loan limit", func(t *testing.T) {
		f := newLoanFixture()
		book := availableBook(7)
		book.IsAvailable = false
		f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleCommon), nil)
		f.books.On("GetByID", ctx, int64(7)).Return(book, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.True(t, domain.IsConflict(err, domain.ReasonBookUnavailable))
		f.loans.AssertNotCalled(t, "CountActiveByUser", mock.Anything, mock.Anything)
	})

	t.Run("outstanding loan makes book unavailable", func(t *testing.T) {
		f := newLoanFixture()
		f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleCommon), nil)
		f.books.On("GetByID", ctx, int64(7)).Return(availableBook(7), nil)
		f.loans.On("ExistsActiveBorrowedForBook", ctx, int64(7)).Return(true, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.True(t, domain.IsConflict(err, domain.ReasonBookUnavailable))
	})

	t.Run("limit reached", func(t *testing.T) {
		f := newLoanFixture()
		f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleCommon), nil)
		f.books.On("GetByID", ctx, int64(7)).Return(availableBook(7), nil)
		f.loans.On("ExistsActiveBorrowedForBook", ctx, int64(7)).Return(false, nil)
		f.loans.On("CountActiveByUser", ctx, int64(1)).Return(3, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.True(t, domain.IsConflict(err, domain.ReasonLoanLimitExceeded))
		f.tx.AssertNotCalled(t, "WithinTx", mock.Anything, mock.Anything)
	})

	t.Run("unknown role is a configuration error", func(t *testing.T) {
		f := newLoanFixture()
		f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.Role("Guest")), nil)
		f.books.On("GetByID", ctx, int64(7)).Return(availableBook(7), nil)
		f.loans.On("ExistsActiveBorrowedForBook", ctx, int64(7)).Return(false, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestLoanUseCase_CreateLoan_StoreConflicts(t *testing.T) {
	ctx := context.Background()

	setup := func() *loanFixture {
		f := newLoanFixture()
		f.users.On("GetByID", ctx, int64(1)).Return(activeUser(1, domain.RoleCommon), nil)
		f.books.On("GetByID", ctx, int64(7)).Return(availableBook(7), nil)
		f.loans.On("ExistsActiveBorrowedForBook", ctx, int64(7)).Return(false, nil)
		f.loans.On("CountActiveByUser", ctx, int64(1)).Return(2, nil)
		return f
	}

	t.Run("availability already flipped", func(t *testing.T) {
		f := setup()
		f.txBook.On("SetAvailability", ctx, int64(7), false).Return(domain.ErrVersionConflict)

		loan, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.Nil(t, loan)
		assert.True(t, domain.IsConflict(err, domain.ReasonBookUnavailable))
		f.txLoan.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("unique index rejects second borrow", func(t *testing.T) {
		f := setup()
		f.txBook.On("SetAvailability", ctx, int64(7), false).Return(nil)
		f.txLoan.On("Insert", ctx, mock.AnythingOfType("*domain.Loan")).Return(int64(0), domain.ErrDuplicateBorrow)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.True(t, domain.IsConflict(err, domain.ReasonBookUnavailable))
		assert.NotErrorIs(t, err, domain.ErrDuplicateBorrow)
	})

	t.Run("limit exceeded after insert", func(t *testing.T) {
		f := setup()
		f.txBook.On("SetAvailability", ctx, int64(7), false).Return(nil)
		f.txLoan.On("Insert", ctx, mock.AnythingOfType("*domain.Loan")).Return(int64(5), nil)
		f.txLoan.On("CountActiveByUser", ctx, int64(1)).Return(4, nil)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.True(t, domain.IsConflict(err, domain.ReasonLoanLimitExceeded))
	})

	t.Run("transient store failure surfaces", func(t *testing.T) {
		f := setup()
		boom := errors.New("connection reset")
		f.txBook.On("SetAvailability", ctx, int64(7), false).Return(boom)

		_, err := f.uc.CreateLoan(ctx, 1, 7)

		assert.ErrorIs(t, err, boom)
	})
}

func borrowed(id int64) *domain.Loan {
	return &domain.Loan{
		ID:                 id,
		UserID:             1,
		BookID:             7,
		LoanDate:           jan1.AddDate(0, 0, -3),
		ExpectedReturnDate: jan1.AddDate(0, 0, 11),
		Status:             domain.LoanStatusBorrowed,
		Active:             true,
	}
}

func TestLoanUseCase_ReturnBook_Success(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	f.loans.On("GetByID", ctx, int64(3)).Return(borrowed(3), nil)
	f.txLoan.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.Status == domain.LoanStatusReturned && l.ReturnDate != nil && l.Active
	}), domain.StateBorrowed).Return(nil)
	f.txBook.On("SetAvailability", ctx, int64(7), true).Return(nil)

	loan, err := f.uc.ReturnBook(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.StateReturned, loan.State())
	require.NotNil(t, loan.ReturnDate)
	assert.True(t, loan.ReturnDate.Equal(jan1))
	f.assertExpectations(t)
}

func TestLoanUseCase_ReturnBook_InactiveBookStaysUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	f.loans.On("GetByID", ctx, int64(3)).Return(borrowed(3), nil)
	f.txLoan.On("Update", ctx, mock.AnythingOfType("*domain.Loan"), domain.StateBorrowed).Return(nil)
	f.txBook.On("SetAvailability", ctx, int64(7), true).Return(domain.NewNotFound(domain.EntityBook, 7))

	loan, err := f.uc.ReturnBook(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusReturned, loan.Status)
}

func TestLoanUseCase_ReturnBook_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		f := newLoanFixture()
		_, err := f.uc.ReturnBook(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidLoanID)
	})

	t.Run("missing loan", func(t *testing.T) {
		f := newLoanFixture()
		f.loans.On("GetByID", ctx, int64(3)).Return(nil, nil)

		_, err := f.uc.ReturnBook(ctx, 3)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deleted loan", func(t *testing.T) {
		f := newLoanFixture()
		loan := borrowed(3)
		loan.Active = false
		f.loans.On("GetByID", ctx, int64(3)).Return(loan, nil)

		_, err := f.uc.ReturnBook(ctx, 3)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("already returned", func(t *testing.T) {
		f := newLoanFixture()
		loan := borrowed(3)
		returnedAt := jan1.AddDate(0, 0, -1)
		loan.Status = domain.LoanStatusReturned
		loan.ReturnDate = &returnedAt
		f.loans.On("GetByID", ctx, int64(3)).Return(loan, nil)

		_, err := f.uc.ReturnBook(ctx, 3)

		assert.True(t, domain.IsConflict(err, domain.ReasonAlreadyReturned))
		f.tx.AssertNotCalled(t, "WithinTx", mock.Anything, mock.Anything)
	})

	t.Run("concurrent return wins", func(t *testing.T) {
		f := newLoanFixture()
		returnedAt := jan1
		current := borrowed(3)
		current.Status = domain.LoanStatusReturned
		current.ReturnDate = &returnedAt
		f.loans.On("GetByID", ctx, int64(3)).Return(borrowed(3), nil)
		f.txLoan.On("Update", ctx, mock.AnythingOfType("*domain.Loan"), domain.StateBorrowed).Return(domain.ErrStaleLoan)
		f.txLoan.On("GetByID", ctx, int64(3)).Return(current, nil)

		_, err := f.uc.ReturnBook(ctx, 3)

		assert.True(t, domain.IsConflict(err, domain.ReasonAlreadyReturned))
		f.txBook.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoanUseCase_DeleteLoan_WhileBorrowedReleasesBook(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	f.loans.On("GetByID", ctx, int64(3)).Return(borrowed(3), nil)
	f.txLoan.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.State() == domain.StateDeletedWhileBorrowed && l.ReturnDate == nil
	}), domain.StateBorrowed).Return(nil)
	f.txBook.On("SetAvailability", ctx, int64(7), true).Return(nil)

	require.NoError(t, f.uc.DeleteLoan(ctx, 3))
	f.assertExpectations(t)
}

func TestLoanUseCase_DeleteLoan_AfterReturnKeepsBook(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	loan := borrowed(3)
	returnedAt := jan1
	loan.Status = domain.LoanStatusReturned
	loan.ReturnDate = &returnedAt
	f.loans.On("GetByID", ctx, int64(3)).Return(loan, nil)
	f.txLoan.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.State() == domain.StateDeletedAfterReturn
	}), domain.StateReturned).Return(nil)

	require.NoError(t, f.uc.DeleteLoan(ctx, 3))
	f.txBook.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanUseCase_DeleteLoan_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing loan", func(t *testing.T) {
		f := newLoanFixture()
		f.loans.On("GetByID", ctx, int64(3)).Return(nil, nil)

		err := f.uc.DeleteLoan(ctx, 3)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.EntityLoan, notFound.Entity)
	})

	t.Run("already inactive", func(t *testing.T) {
		f := newLoanFixture()
		loan := borrowed(3)
		loan.Active = false
		f.loans.On("GetByID", ctx, int64(3)).Return(loan, nil)

		err := f.uc.DeleteLoan(ctx, 3)

		assert.True(t, domain.IsConflict(err, domain.ReasonAlreadyInactive))
	})

	t.Run("concurrent delete wins", func(t *testing.T) {
		f := newLoanFixture()
		gone := borrowed(3)
		gone.Active = false
		f.loans.On("GetByID", ctx, int64(3)).Return(borrowed(3), nil)
		f.txLoan.On("Update", ctx, mock.AnythingOfType("*domain.Loan"), domain.StateBorrowed).Return(domain.ErrStaleLoan)
		f.txLoan.On("GetByID", ctx, int64(3)).Return(gone, nil)

		err := f.uc.DeleteLoan(ctx, 3)

		assert.True(t, domain.IsConflict(err, domain.ReasonAlreadyInactive))
	})
}

func TestLoanUseCase_DeleteLoan_AfterConcurrentReturn(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	returnedAt := jan1
	current := borrowed(3)
	current.Status = domain.LoanStatusReturned
	current.ReturnDate = &returnedAt

	f.loans.On("GetByID", ctx, int64(3)).Return(borrowed(3), nil)
	f.txLoan.On("Update", ctx, mock.AnythingOfType("*domain.Loan"), domain.StateBorrowed).Return(domain.ErrStaleLoan).Once()
	f.txLoan.On("GetByID", ctx, int64(3)).Return(current, nil)
	f.txLoan.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.State() == domain.StateDeletedAfterReturn
	}), domain.StateReturned).Return(nil).Once()

	require.NoError(t, f.uc.DeleteLoan(ctx, 3))
	// книгу уже освободил возврат
	f.txBook.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
	f.txLoan.AssertExpectations(t)
}

func TestLoanUseCase_Queries(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	list := []*domain.Loan{borrowed(1), borrowed(2)}

	f.loans.On("GetByID", ctx, int64(9)).Return(nil, nil)
	f.loans.On("List", ctx).Return(list, nil)
	f.loans.On("ListActive", ctx).Return(list[:1], nil)
	f.loans.On("ListByUser", ctx, int64(1)).Return(list, nil)

	loan, err := f.uc.GetLoanByID(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, loan)

	all, err := f.uc.ListLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.uc.ListActiveLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	byUser, err := f.uc.ListLoansByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	_, err = f.uc.ListLoansByUser(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)

	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything, mock.Anything)
}

func TestSystemClock_Now(t *testing.T) {
	now := usecase.SystemClock{}.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
