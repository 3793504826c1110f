package domain

import (
	"context"
	"time"
)

// LoanStatus - статус выдачи.
type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "Borrowed"
	LoanStatusReturned LoanStatus = "Returned"
)

// LoanState - пара (статус, активность). Флаг active независим от статуса:
// мягкое удаление не меняет статус, поэтому достижимы четыре состояния.
type LoanState struct {
	Status LoanStatus
	Active bool
}

var (
	// StateBorrowed - единственное нетерминальное состояние.
	StateBorrowed = LoanState{Status: LoanStatusBorrowed, Active: true}
	// StateReturned - книга возвращена, запись активна.
	StateReturned = LoanState{Status: LoanStatusReturned, Active: true}
	// StateDeletedWhileBorrowed - выдача удалена администратором до возврата.
	StateDeletedWhileBorrowed = LoanState{Status: LoanStatusBorrowed, Active: false}
	// StateDeletedAfterReturn - выдача удалена после возврата.
	StateDeletedAfterReturn = LoanState{Status: LoanStatusReturned, Active: false}
)

// Valid сообщает, является ли пара одним из четырех допустимых состояний.
func (s LoanState) Valid() bool {
	switch s {
	case StateBorrowed, StateReturned, StateDeletedWhileBorrowed, StateDeletedAfterReturn:
		return true
	default:
		return false
	}
}

// HoldsBook сообщает, удерживает ли выдача книгу у читателя.
func (s LoanState) HoldsBook() bool {
	return s == StateBorrowed
}

func (s LoanState) String() string {
	if s.Active {
		return string(s.Status) + "/active"
	}
	return string(s.Status) + "/inactive"
}

// Loan представляет выдачу книги пользователю.
type Loan struct {
	ID                 int64
	UserID             int64
	BookID             int64
	UserName           string
	BookTitle          string
	LoanDate           time.Time
	ExpectedReturnDate time.Time
	ReturnDate         *time.Time
	Status             LoanStatus
	Active             bool
}

// State возвращает пару (статус, активность) выдачи.
func (l *Loan) State() LoanState {
	return LoanState{Status: l.Status, Active: l.Active}
}

// LoanRepository определяет контракт для работы с хранилищем выдач.
type LoanRepository interface {
	// Insert сохраняет новую выдачу и возвращает ее id.
	// Нарушение уникальности "одна активная Borrowed-выдача на книгу" возвращается как ErrDuplicateBorrow.
	Insert(ctx context.Context, loan *Loan) (int64, error)

	// Update записывает статус, дату возврата и активность, только если текущее состояние равно from.
	// Возвращает *NotFoundError, если выдачи нет, и ErrStaleLoan, если состояние уже изменилось.
	Update(ctx context.Context, loan *Loan, from LoanState) error

	// GetByID возвращает nil без ошибки, если выдачи нет.
	GetByID(ctx context.Context, loanID int64) (*Loan, error)
	List(ctx context.Context) ([]*Loan, error)
	// ListActive возвращает активные выдачи со статусом Borrowed.
	ListActive(ctx context.Context) ([]*Loan, error)
	// ListByUser возвращает активные выдачи пользователя со статусом Borrowed.
	ListByUser(ctx context.Context, userID int64) ([]*Loan, error)
	CountActiveByUser(ctx context.Context, userID int64) (int, error)
	ExistsActiveBorrowedForBook(ctx context.Context, bookID int64) (bool, error)
}

// TxStores - хранилища, привязанные к одной транзакции.
type TxStores interface {
	Books() BookRepository
	Loans() LoanRepository
}

// Transactor выполняет fn в одной транзакции: коммит при nil, откат при ошибке.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error
}
