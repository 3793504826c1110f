package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library-loan-service/internal/database"
	"library-loan-service/internal/domain"
)

// BookRepository реализует чтение книг и смену флага доступности.
type BookRepository struct {
	queries *database.Queries
}

// NewBookRepository создает новый экземпляр BookRepository.
func NewBookRepository(queries *database.Queries) domain.BookRepository {
	return &BookRepository{
		queries: queries,
	}
}

// GetByID возвращает книгу по ID.
func (r *BookRepository) GetByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	dbBook, err := r.queries.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.EntityBook, bookID)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &domain.Book{
		ID:          dbBook.ID,
		Title:       dbBook.Title,
		Author:      dbBook.Author,
		ISBN:        dbBook.Isbn,
		IsAvailable: dbBook.IsAvailable,
		Active:      dbBook.Active,
	}, nil
}

// SetAvailability переключает флаг, только если он еще равен !available.
func (r *BookRepository) SetAvailability(ctx context.Context, bookID int64, available bool) error {
	affected, err := r.queries.SetBookAvailability(ctx, database.SetBookAvailabilityParams{
		IsAvailable: available,
		ID:          bookID,
		Expected:    !available,
	})
	if err != nil {
		return fmt.Errorf("failed to set book availability: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// ни одной строки: либо книги нет, либо флаг уже изменили
	count, err := r.queries.ActiveBookExists(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to check book exists: %w", err)
	}
	if count == 0 {
		return domain.NewNotFound(domain.EntityBook, bookID)
	}

	return domain.ErrVersionConflict
}
