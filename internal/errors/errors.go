// FilePath: internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Sentinels of the fleet domain. APIError unwraps to its cause, so
// errors.Is reaches these through any APIError built around them.
var (
	ErrUnknownMachine    = stderrors.New("unknown machine")
	ErrInvalidState      = stderrors.New("invalid navigation state")
	ErrSensorUnavailable = stderrors.New("sensor unavailable")
	ErrRecordNotFound    = stderrors.New("maintenance record not found")
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeDatabase          ErrorType = "database"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeInternal          ErrorType = "internal"
	ErrorTypeUnavailable       ErrorType = "service_unavailable"
	ErrorTypeUnknownMachine    ErrorType = "unknown_machine"
	ErrorTypeInvalidState      ErrorType = "invalid_state"
	ErrorTypeSensorUnavailable ErrorType = "sensor_unavailable"
	ErrorTypeRecordNotFound    ErrorType = "record_not_found"
)

// APIError represents a structured API error
type APIError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// WithRequestID adds a request ID to the error
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func newError(t ErrorType, code int, msg string, err error) *APIError {
	return &APIError{
		Type:    t,
		Message: msg,
		Code:    code,
		err:     err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, err error) *APIError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, msg, err)
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *APIError {
	return newError(ErrorTypeDatabase, http.StatusInternalServerError, msg, err)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(msg string, err error) *APIError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, msg, err)
}

// NewInternalError creates a new internal server error
func NewInternalError(msg string, err error) *APIError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, msg, err)
}

// NewUnavailableError creates a new service unavailable error
func NewUnavailableError(msg string, err error) *APIError {
	return newError(ErrorTypeUnavailable, http.StatusServiceUnavailable, msg, err)
}

// NewUnknownMachineError reports a navigation or lookup target outside the fleet.
func NewUnknownMachineError(id string) *APIError {
	return newError(ErrorTypeUnknownMachine, http.StatusNotFound,
		fmt.Sprintf("unknown machine %q", id), ErrUnknownMachine)
}

// NewInvalidStateError reports a broken navigation invariant.
func NewInvalidStateError(msg string) *APIError {
	return newError(ErrorTypeInvalidState, http.StatusConflict, msg, ErrInvalidState)
}

// NewSensorUnavailableError wraps a telemetry failure for machine id.
func NewSensorUnavailableError(id string, cause error) *APIError {
	if cause == nil {
		cause = ErrSensorUnavailable
	} else if !stderrors.Is(cause, ErrSensorUnavailable) {
		cause = fmt.Errorf("%w: %v", ErrSensorUnavailable, cause)
	}
	return newError(ErrorTypeSensorUnavailable, http.StatusServiceUnavailable,
		fmt.Sprintf("sensors of %q unavailable", id), cause)
}

// NewRecordNotFoundError wraps a maintenance store miss for machine id.
func NewRecordNotFoundError(id string, cause error) *APIError {
	if cause == nil {
		cause = ErrRecordNotFound
	} else if !stderrors.Is(cause, ErrRecordNotFound) {
		cause = fmt.Errorf("%w: %v", ErrRecordNotFound, cause)
	}
	return newError(ErrorTypeRecordNotFound, http.StatusNotFound,
		fmt.Sprintf("no maintenance data for %q", id), cause)
}

// FromError converts any error into an APIError suitable for a response.
func FromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case stderrors.Is(err, ErrUnknownMachine):
		return newError(ErrorTypeUnknownMachine, http.StatusNotFound, err.Error(), err)
	case stderrors.Is(err, ErrInvalidState):
		return newError(ErrorTypeInvalidState, http.StatusConflict, err.Error(), err)
	case stderrors.Is(err, ErrSensorUnavailable):
		return newError(ErrorTypeSensorUnavailable, http.StatusServiceUnavailable, err.Error(), err)
	case stderrors.Is(err, ErrRecordNotFound):
		return newError(ErrorTypeRecordNotFound, http.StatusNotFound, err.Error(), err)
	}
	return NewInternalError("internal error", err)
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == ErrorTypeNotFound
	}
	return false
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == ErrorTypeValidation
	}
	return false
}

func IsUnknownMachine(err error) bool { return stderrors.Is(err, ErrUnknownMachine) }

func IsInvalidState(err error) bool { return stderrors.Is(err, ErrInvalidState) }

func IsSensorUnavailable(err error) bool { return stderrors.Is(err, ErrSensorUnavailable) }

func IsRecordNotFound(err error) bool { return stderrors.Is(err, ErrRecordNotFound) }
