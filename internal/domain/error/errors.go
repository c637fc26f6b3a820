package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeInsufficientBalance = 4002
	CodeInvalidAmount       = 4003
	CodeInvalidUserID       = 4004
	CodeConstraintViolation = 4005
	CodeUserNotFound        = 4040
	CodeModelNotFound       = 4041
	CodeTransactionNotFound = 4042
	CodeRequestNotFound     = 4043
	CodeUserLocked          = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodePricingConfig  = 5001
)

// Base error types
var (
	// ErrValidation is returned when caller-supplied input violates a precondition
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientBalance is returned when a user has insufficient funds for a charge
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a monetary amount is malformed or non-positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidChatID is returned when the Telegram chat ID is zero
	ErrInvalidChatID = errors.New("chat ID must be set")

	// ErrPricingNotConfigured is returned when no pricing settings row exists.
	// Operator misconfiguration; must propagate, never be swallowed.
	ErrPricingNotConfigured = errors.New("pricing settings are not configured")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrBalanceNotFound is returned when a balance row is missing
	ErrBalanceNotFound = errors.New("balance not found")

	// ErrModelNotFound is returned when the referenced model is missing or inactive
	ErrModelNotFound = errors.New("model not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrRequestNotFound is returned when the generation request doesn't exist
	ErrRequestNotFound = errors.New("generation request not found")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserLocked is returned when a user's balance is locked by another operation
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID), errors.Is(err, ErrInvalidChatID):
		return CodeInvalidUserID
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrBalanceNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrModelNotFound):
		return CodeModelNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrRequestNotFound):
		return CodeRequestNotFound
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrPricingNotConfigured):
		return CodePricingConfig
	default:
		return CodeInternalServer
	}
}

// ValidationError reports a caller-supplied input that violates a stated
// precondition. The message is constructed to be end-user-readable.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error with a user-facing message
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError carries the current balance and the required
// amount so the transport layer can render concrete numbers.
type InsufficientBalanceError struct {
	UserID   uint64
	Balance  decimal.Decimal
	Required decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s (short %s)",
		e.UserID, e.Required.StringFixed(2), e.Balance.StringFixed(2), e.Shortfall().StringFixed(2))
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Shortfall returns how many tokens the user is missing.
func (e *InsufficientBalanceError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Balance)
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"required":        e.Required.StringFixed(2),
		"current_balance": e.Balance.StringFixed(2),
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, balance, required decimal.Decimal) error {
	return &InsufficientBalanceError{
		UserID:   userID,
		Balance:  balance,
		Required: required,
	}
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBalanceNotFound) ||
		errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}

// IsUserLockedError checks if the error is related to a locked user
func IsUserLockedError(err error) bool {
	return errors.Is(err, ErrUserLocked)
}
