package services

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/shortlinks/internal/validation"
)

// Ожидаемые ошибки. Текст ошибок можно показывать пользователю.
var (
	ErrUnauthenticated = errors.New("You must be signed in to manage links.") //nolint:stylecheck,revive
	ErrUnauthorized    = errors.New("Unauthorized")                           //nolint:stylecheck,revive
	ErrNotFound        = errors.New("Link not found")                         //nolint:stylecheck,revive
	ErrConflict        = errors.New("This short code is already in use. Please choose a different one.") //nolint:stylecheck,revive,lll
	ErrValidation      = errors.New("validation error")
	ErrOperationFailed = errors.New("operation failed")
)

// ErrUnknown внутренняя ошибка, наружу из контроллеров не уходит.
var ErrUnknown = errors.New("[service]: unknown error")

// ValidationError некорректный ввод. Сообщение - все нарушения через запятую.
type ValidationError struct {
	Errs *validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Errs.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Errs
}

// Operation тип операции над ссылкой.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// OperationError непредвиденная ошибка хранилища. Детали остаются в логах, пользователь
// видит только общее сообщение.
type OperationError struct {
	Op Operation
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("Failed to %s link. Please try again.", e.Op)
}

func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}
