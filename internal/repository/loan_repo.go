package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"library-loan-service/internal/database"
	"library-loan-service/internal/domain"
)

// LoanRepository реализует хранение выдач.
type LoanRepository struct {
	queries *database.Queries
}

// NewLoanRepository создает новый экземпляр LoanRepository.
func NewLoanRepository(queries *database.Queries) domain.LoanRepository {
	return &LoanRepository{
		queries: queries,
	}
}

// Insert сохраняет выдачу и возвращает присвоенный id.
func (r *LoanRepository) Insert(ctx context.Context, loan *domain.Loan) (int64, error) {
	id, err := r.queries.InsertLoan(ctx, database.InsertLoanParams{
		UserID:             loan.UserID,
		BookID:             loan.BookID,
		LoanDate:           loan.LoanDate,
		ExpectedReturnDate: loan.ExpectedReturnDate,
		ReturnDate:         toNullTime(loan.ReturnDate),
		Status:             string(loan.Status),
		Active:             loan.Active,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, domain.ErrDuplicateBorrow
		}
		return 0, fmt.Errorf("failed to insert loan: %w", err)
	}

	return id, nil
}

// Update записывает новое состояние выдачи, если текущее совпадает с from.
func (r *LoanRepository) Update(ctx context.Context, loan *domain.Loan, from domain.LoanState) error {
	affected, err := r.queries.UpdateLoanState(ctx, database.UpdateLoanStateParams{
		Status:     string(loan.Status),
		ReturnDate: toNullTime(loan.ReturnDate),
		Active:     loan.Active,
		ID:         loan.ID,
		FromStatus: string(from.Status),
		FromActive: from.Active,
	})
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if affected > 0 {
		return nil
	}

	count, err := r.queries.LoanExists(ctx, loan.ID)
	if err != nil {
		return fmt.Errorf("failed to check loan exists: %w", err)
	}
	if count == 0 {
		return domain.NewNotFound(domain.EntityLoan, loan.ID)
	}

	return domain.ErrStaleLoan
}

// GetByID возвращает выдачу по ID или nil, если ее нет.
func (r *LoanRepository) GetByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	row, err := r.queries.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return toDomainLoan(row), nil
}

func (r *LoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	rows, err := r.queries.ListLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return toDomainLoans(rows), nil
}

func (r *LoanRepository) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	rows, err := r.queries.ListActiveLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	return toDomainLoans(rows), nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Loan, error) {
	rows, err := r.queries.ListActiveLoansByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user loans: %w", err)
	}
	return toDomainLoans(rows), nil
}

// CountActiveByUser считает активные невозвращенные выдачи пользователя.
func (r *LoanRepository) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	count, err := r.queries.CountActiveLoansByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count user loans: %w", err)
	}
	return int(count), nil
}

func (r *LoanRepository) ExistsActiveBorrowedForBook(ctx context.Context, bookID int64) (bool, error) {
	count, err := r.queries.CountActiveLoansByBook(ctx, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to check book loans: %w", err)
	}
	return count > 0, nil
}

func toDomainLoans(rows []database.LoanRow) []*domain.Loan {
	loans := make([]*domain.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, toDomainLoan(row))
	}
	return loans
}

func toDomainLoan(row database.LoanRow) *domain.Loan {
	// Конвертируем NullTime → *time.Time
	var returnDate *time.Time
	if row.ReturnDate.Valid {
		t := row.ReturnDate.Time.UTC()
		returnDate = &t
	}

	return &domain.Loan{
		ID:                 row.ID,
		UserID:             row.UserID,
		BookID:             row.BookID,
		UserName:           row.UserName,
		BookTitle:          row.BookTitle,
		LoanDate:           row.LoanDate.UTC(),
		ExpectedReturnDate: row.ExpectedReturnDate.UTC(),
		ReturnDate:         returnDate,
		Status:             domain.LoanStatus(row.Status),
		Active:             row.Active,
	}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
