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

// ErrForbidden indicates that the user is not allowed to perform the requested action.
var ErrForbidden = errors.New("action forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates that the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidOpeningBalance indicates an opening balance with a negative magnitude.
// Direction is carried in the balance type, never in the sign of the amount.
var ErrInvalidOpeningBalance = errors.New("opening balance amount must not be negative")

// ErrUnsupportedKind indicates a transaction kind the ledger fold does not recognize.
// Unreachable when transactions come from NormalizeRecords, but unknown kinds must
// fail loudly rather than be skipped.
var ErrUnsupportedKind = errors.New("unsupported transaction kind")

// RecordValidationError reports a raw record that failed normalization. It names the
// offending record and field so callers can decide whether to skip or abort.
type RecordValidationError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *RecordValidationError) Error() string {
	return fmt.Sprintf("record %s: invalid %s: %s", e.RecordID, e.Field, e.Reason)
}

// Unwrap makes the error match errors.Is(err, ErrValidation).
func (e *RecordValidationError) Unwrap() error {
	return ErrValidation
}

// NewRecordValidationError builds a RecordValidationError for the given record and field.
func NewRecordValidationError(recordID, field, reason string) *RecordValidationError {
	return &RecordValidationError{RecordID: recordID, Field: field, Reason: reason}
}

// AppError wraps a lower-level failure with an HTTP-ish status code for the handlers.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewConflictError creates an AppError for duplicate resources.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError for rejected input.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
