package domain

import "context"

// Role определяет профиль пользователя, от которого зависят правила выдачи.
type Role string

const (
	RoleCommon Role = "Common"
	RoleAdmin  Role = "Admin"
)

// User представляет читателя. Сервис выдачи только читает id, роль и флаг активности.
type User struct {
	ID     int64
	Name   string
	Email  string
	Role   Role
	Active bool
}

// UserRepository определяет контракт для чтения пользователей.
type UserRepository interface {
	// GetByID возвращает *NotFoundError, если пользователя нет.
	GetByID(ctx context.Context, userID int64) (*User, error)
}
