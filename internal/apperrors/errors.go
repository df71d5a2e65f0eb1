package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrStorage indicates an underlying persistence failure. The in-flight operation
// must be treated as failed; partial success is never assumed.
var ErrStorage = errors.New("storage failure")

// Ledger-specific errors. Services wrap these with %w and contextual detail.
var (
	// ErrUnbalancedEntry indicates sum(debits) != sum(credits) for a transaction.
	ErrUnbalancedEntry = errors.New("transaction entries do not balance")

	// ErrPeriodClosed indicates the target fiscal period is not OPEN.
	ErrPeriodClosed = errors.New("fiscal period is closed")

	// ErrYearClosed indicates the target fiscal year is not OPEN.
	ErrYearClosed = errors.New("fiscal year is closed")

	// ErrInvalidStateTransition indicates the attempted lifecycle transition is not
	// legal from the transaction's current status.
	ErrInvalidStateTransition = errors.New("invalid transaction state transition")

	// ErrPeriodHasOpenTransactions blocks closing a period that still has DRAFT or
	// PENDING_APPROVAL transactions referencing it.
	ErrPeriodHasOpenTransactions = errors.New("fiscal period has open transactions")

	// ErrYearHasOpenPeriods blocks closing a year with non-CLOSED periods.
	ErrYearHasOpenPeriods = errors.New("fiscal year has open periods")

	// ErrInvalidPeriodRange indicates an overlapping or non-contiguous period definition.
	ErrInvalidPeriodRange = errors.New("invalid fiscal period range")

	// ErrAccountNotFound indicates an entry references an unknown account.
	ErrAccountNotFound = errors.New("account not found")
)

// AppError wraps an underlying error with a transport-agnostic status code and a
// human-readable message. Repositories use it to surface storage failures without
// leaking driver details into the core.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
