package domain

import (
	"errors"
	"fmt"
)

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidUserID = errors.New("invalid user id")
	ErrInvalidBookID = errors.New("invalid book id")
	ErrInvalidLoanID = errors.New("invalid loan id")

	// Категории, к которым разворачиваются типизированные ошибки
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrConfiguration = errors.New("configuration error")

	// Storage errors: переводятся сервисом в ConflictError и наружу не выходят
	ErrVersionConflict = errors.New("book availability changed concurrently")
	ErrDuplicateBorrow = errors.New("book already has an outstanding loan")
	ErrStaleLoan       = errors.New("loan state changed concurrently")
)

// Entity - вид сущности в ошибке.
type Entity string

const (
	EntityUser Entity = "user"
	EntityBook Entity = "book"
	EntityLoan Entity = "loan"
)

// NotFoundError - сущность отсутствует или деактивирована.
type NotFoundError struct {
	Entity Entity
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound создает *NotFoundError.
func NewNotFound(entity Entity, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictReason - причина конфликта.
type ConflictReason string

const (
	ReasonBookUnavailable   ConflictReason = "BOOK_UNAVAILABLE"
	ReasonLoanLimitExceeded ConflictReason = "LOAN_LIMIT_EXCEEDED"
	ReasonAlreadyReturned   ConflictReason = "ALREADY_RETURNED"
	ReasonAlreadyInactive   ConflictReason = "ALREADY_INACTIVE"
)

// ConflictError - операция противоречит текущему состоянию.
// Entity и ID указывают на сущность, из-за которой возник конфликт.
type ConflictError struct {
	Reason ConflictReason
	Entity Entity
	ID     int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict %s on %s %d", e.Reason, e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflict создает *ConflictError.
func NewConflict(reason ConflictReason, entity Entity, id int64) error {
	return &ConflictError{Reason: reason, Entity: entity, ID: id}
}

// IsConflict проверяет, что err - конфликт с указанной причиной.
func IsConflict(err error, reason ConflictReason) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict) && conflict.Reason == reason
}

// ConfigurationError - политика выдачи не знает роль пользователя.
type ConfigurationError struct {
	Role Role
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no loan policy for role %q", e.Role)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// HTTPError для соответствия OpenAPI
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг причин конфликта в HTTP ошибки
var ConflictMapping = map[ConflictReason]HTTPError{
	ReasonBookUnavailable:   {Code: string(ReasonBookUnavailable), Message: "book is not available for loan"},
	ReasonLoanLimitExceeded: {Code: string(ReasonLoanLimitExceeded), Message: "user reached the maximum number of active loans"},
	ReasonAlreadyReturned:   {Code: string(ReasonAlreadyReturned), Message: "loan is already returned"},
	ReasonAlreadyInactive:   {Code: string(ReasonAlreadyInactive), Message: "loan is already inactive"},
}

// Маппинг ошибок валидации
var ValidationMapping = map[error]HTTPError{
	ErrInvalidUserID: {Code: "INVALID_REQUEST", Message: "user_id must be a positive integer"},
	ErrInvalidBookID: {Code: "INVALID_REQUEST", Message: "book_id must be a positive integer"},
	ErrInvalidLoanID: {Code: "INVALID_REQUEST", Message: "loan id must be a positive integer"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return HTTPError{Code: "NOT_FOUND", Message: notFound.Error()}, true
	}

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		httpErr, exists := ConflictMapping[conflict.Reason]
		if !exists {
			return HTTPError{Code: string(conflict.Reason), Message: conflict.Error()}, true
		}
		httpErr.Message = fmt.Sprintf("%s (%s %d)", httpErr.Message, conflict.Entity, conflict.ID)
		return httpErr, true
	}

	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return HTTPError{Code: "POLICY_MISCONFIGURED", Message: cfgErr.Error()}, true
	}

	for sentinel, httpErr := range ValidationMapping {
		if errors.Is(err, sentinel) {
			return httpErr, true
		}
	}

	return HTTPError{}, false
}
