package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details any    `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so callers can use errors.Is against the predefined values.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Code == other.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// WithDetails returns a copy of err carrying a machine readable payload for clients.
func WithDetails(err *Error, details any) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Details = details
	return &clone
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Scheduling errors.
var (
	ErrEntryNotFound        = New("ENTRY_NOT_FOUND", http.StatusNotFound, "timetable entry not found")
	ErrSchedulingConflict   = New("SCHEDULING_CONFLICT", http.StatusConflict, "scheduling conflict")
	ErrDuplicateConfig      = New("DUPLICATE_CONFIG", http.StatusConflict, "calendar configuration already exists for this academic year")
	ErrDuplicateAssignment  = New("DUPLICATE_ASSIGNMENT", http.StatusConflict, "an open substitute assignment already exists for this entry and date")
	ErrDuplicateSwapRequest = New("DUPLICATE_SWAP_REQUEST", http.StatusConflict, "a pending swap request already exists for these entries and date")
	ErrInvalidState         = New("INVALID_STATE", http.StatusConflict, "transition not allowed from current state")
	ErrAlreadyProcessed     = New("ALREADY_PROCESSED", http.StatusConflict, "request already processed")
	ErrSubstituteBusy       = New("SUBSTITUTE_BUSY", http.StatusConflict, "substitute teacher is not free at this slot")
	ErrSubstituteIneligible = New("SUBSTITUTE_INELIGIBLE", http.StatusUnprocessableEntity, "substitute teacher cannot teach this subject")
	ErrNoActiveCalendar     = New(ErrPreconditionFailed.Code, http.StatusPreconditionFailed, "no active calendar configuration")
	ErrRoomUnavailable      = New("ROOM_UNAVAILABLE", http.StatusUnprocessableEntity, "room is inactive or unavailable")
	ErrPeriodNotSchedulable = New("PERIOD_NOT_SCHEDULABLE", http.StatusUnprocessableEntity, "period cannot hold lessons")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Internal wraps err as an internal error with the provided message.
func Internal(err error, message string) *Error {
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, message)
}
