package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Error codes for the game error taxonomy.
const (
	CodeInvalidEvent    = "E100"
	CodeDatabase        = "E200"
	CodeTransientRender = "E300"
	CodeNotFound        = "E404"
	CodeNoSession       = "E409"
)

type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *AppError) Cause() error {
	return e.Unwrap()
}

// NewInvalidEventError marks a malformed callback payload. Session state is
// never mutated on this path.
func NewInvalidEventError(msg string) *AppError {
	return &AppError{
		Code:        CodeInvalidEvent,
		Message:     fmt.Sprintf("invalid event: %s", msg),
		UserMessage: "❌ Ошибка данных",
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewNotFoundError marks a reference to an unknown task, pavilion or fact.
func NewNotFoundError(entity string, id int64) *AppError {
	return &AppError{
		Code:        CodeNotFound,
		Message:     fmt.Sprintf("%s %d not found", entity, id),
		UserMessage: "❌ Не найдено. Вернись на карту ярмарки.",
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewNoActiveSessionError marks a step/hit event that references a task
// session that no longer exists. The user is told to restart the task.
func NewNoActiveSessionError(taskID int64) *AppError {
	return &AppError{
		Code:        CodeNoSession,
		Message:     fmt.Sprintf("no active session for task %d", taskID),
		UserMessage: "❌ Задание не найдено. Начните заново.",
		Severity:    SeverityLow,
		Retryable:   true,
		cause:       nil,
	}
}

// NewTransientRenderError marks a rejected render write. The state mutation
// that preceded it is kept; the render is not retried beyond a lightweight
// acknowledgement.
func NewTransientRenderError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        CodeTransientRender,
		Message:     fmt.Sprintf("render rejected: %s", underlyingMsg),
		UserMessage: "",
		Severity:    SeverityLow,
		Retryable:   true,
		cause:       cause,
	}
}

// NewDatabaseError wraps a persistence layer failure.
func NewDatabaseError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        CodeDatabase,
		Message:     fmt.Sprintf("database error: %s", underlyingMsg),
		UserMessage: "Временная проблема, попробуйте позже",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}
