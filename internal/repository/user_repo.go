package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library-loan-service/internal/database"
	"library-loan-service/internal/domain"
)

// UserRepository читает пользователей из базы.
type UserRepository struct {
	queries *database.Queries
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(queries *database.Queries) domain.UserRepository {
	return &UserRepository{
		queries: queries,
	}
}

// GetByID возвращает пользователя по ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	dbUser, err := r.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.EntityUser, userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &domain.User{
		ID:     dbUser.ID,
		Name:   dbUser.Name,
		Email:  dbUser.Email,
		Role:   domain.Role(dbUser.Role),
		Active: dbUser.Active,
	}, nil
}
