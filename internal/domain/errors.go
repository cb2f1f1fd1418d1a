package domain

import "errors"

// 业务错误集中定义，handler 统一映射到 HTTP 状态
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoUpdates          = errors.New("No updates made. Please update at least one field.")
	ErrSamePassword       = errors.New("New password must be different from the old password")
	ErrInvalidDueDate     = errors.New("Invalid due date format. Please use DD-MM-YYYY.")
	ErrVersionConflict    = errors.New("todo was modified by another request")
)

// ValidationError 带字段明细的校验失败
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) { e.Fields[field] = msg }

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }
