package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the ErrorCode carried by err, or ErrorCode_INTERNAL if err
// is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCode_INTERNAL
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

// Interview session errors

// ErrSessionAlreadyActive is returned when a second interview is started for
// a user that already has a live session.
func ErrSessionAlreadyActive(userKey string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_ALREADY_ACTIVE,
		Message:  "An interview session is already active for this user",
	}.WithDetail("user_key", userKey)
}

// ErrSessionBusy is returned when a session mutation is attempted while
// another mutation for the same session is still in flight.
func ErrSessionBusy(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_BUSY,
		Message:  "Another operation is in progress for this session",
	}.WithDetail("session_id", sessionID)
}

// ErrNoActiveSession is returned for operations on a user with no live
// interview session.
func ErrNoActiveSession(userKey string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NO_ACTIVE_SESSION,
		Message:  "No active interview session",
	}.WithDetail("user_key", userKey)
}

// ErrSessionWrongPhase signals a state-machine invariant violation: the
// caller invoked an operation that is not valid in the session's current
// phase. This indicates a bug in the calling layer.
func ErrSessionWrongPhase(current, expected string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_WRONG_PHASE,
		Message:  "Interview session is in the wrong phase for this operation",
	}.WithDetail("current_phase", current).
		WithDetail("expected_phase", expected)
}

// External dependency errors

func ErrOracleUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_ORACLE_UNAVAILABLE,
		Message:  "Dialogue service is unavailable",
	}
}

func ErrOracleTimeout(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusGatewayTimeout,
		Code:     ErrorCode_ORACLE_TIMEOUT,
		Message:  "Dialogue service did not respond in time",
	}
}

// ErrValidatorMalformedResponse is never surfaced to callers as a hard
// failure; the answer validator fails open. It exists for logging and tests.
func ErrValidatorMalformedResponse(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_VALIDATOR_MALFORMED_RESPONSE,
		Message:  "Answer analysis returned a malformed response",
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

// ErrStorageFailure is logged and swallowed by the persistence gateway; it
// must never break a live interview.
func ErrStorageFailure(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILURE,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}
