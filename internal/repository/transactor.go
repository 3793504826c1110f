package repository

import (
	"context"
	"database/sql"
	"fmt"

	"library-loan-service/internal/database"
	"library-loan-service/internal/domain"
)

// Transactor выполняет операции с книгами и выдачами в одной транзакции.
type Transactor struct {
	db      *sql.DB
	queries *database.Queries
}

// NewTransactor создает новый экземпляр Transactor.
func NewTransactor(db *sql.DB, queries *database.Queries) domain.Transactor {
	return &Transactor{
		db:      db,
		queries: queries,
	}
}

type txStores struct {
	books domain.BookRepository
	loans domain.LoanRepository
}

func (s *txStores) Books() domain.BookRepository { return s.books }
func (s *txStores) Loans() domain.LoanRepository { return s.loans }

// WithinTx коммитит транзакцию, если fn вернула nil, иначе откатывает.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores domain.TxStores) error) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txQueries := t.queries.WithTx(tx)
	stores := &txStores{
		books: NewBookRepository(txQueries),
		loans: NewLoanRepository(txQueries),
	}

	if err = fn(ctx, stores); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
