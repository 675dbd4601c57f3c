package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", NewUnknownMachineError("Nonexistent"))
	assert.True(t, IsUnknownMachine(err))
	assert.False(t, IsInvalidState(err))

	sensorErr := NewSensorUnavailableError("Mill 2", stderrors.New("dial tcp: refused"))
	assert.True(t, IsSensorUnavailable(sensorErr))
	assert.Contains(t, sensorErr.Error(), "dial tcp")

	recErr := NewRecordNotFoundError("Mill 9", nil)
	assert.True(t, IsRecordNotFound(recErr))
	assert.Equal(t, http.StatusNotFound, recErr.Code)
}

func TestFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		typ  ErrorType
		code int
	}{
		{"api error passes through", NewValidationError("bad", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"unknown machine", fmt.Errorf("x: %w", ErrUnknownMachine), ErrorTypeUnknownMachine, http.StatusNotFound},
		{"invalid state", ErrInvalidState, ErrorTypeInvalidState, http.StatusConflict},
		{"sensor", ErrSensorUnavailable, ErrorTypeSensorUnavailable, http.StatusServiceUnavailable},
		{"record", ErrRecordNotFound, ErrorTypeRecordNotFound, http.StatusNotFound},
		{"anything else", stderrors.New("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := FromError(tc.err)
			assert.Equal(t, tc.typ, apiErr.Type)
			assert.Equal(t, tc.code, apiErr.Code)
		})
	}
}

func TestWithRequestID(t *testing.T) {
	err := NewInvalidStateError("detail without selection").WithRequestID("req_abc")
	assert.Equal(t, "req_abc", err.RequestID)
	assert.True(t, IsInvalidState(err))
	assert.True(t, IsValidation(NewValidationError("x", nil)))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", NewNotFoundError("x", nil))))
}
