package domain

import "context"

// Book представляет экземпляр книги в каталоге.
type Book struct {
	ID          int64
	Title       string
	Author      string
	ISBN        string
	IsAvailable bool
	Active      bool
}

// BookRepository определяет контракт для работы с книгами.
type BookRepository interface {
	// GetByID возвращает *NotFoundError, если книги нет.
	GetByID(ctx context.Context, bookID int64) (*Book, error)

	// SetAvailability атомарно меняет флаг доступности активной книги (compare-and-swap).
	// Возвращает ErrVersionConflict, если флаг уже имеет значение available,
	// и *NotFoundError, если книги нет или она деактивирована.
	SetAvailability(ctx context.Context, bookID int64, available bool) error
}
