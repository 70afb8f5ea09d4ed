package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, ErrNotFound, Code(NotFound("record", nil)))
	assert.Equal(t, ErrValidation, Code(Validation("bad payload", nil)))
	assert.Equal(t, ErrPrecondition, Code(Precondition("not ready")))
	assert.Equal(t, ErrTransport, Code(Transport("connection reset", nil)))

	// Unknown errors default to internal.
	assert.Equal(t, ErrInternal, Code(errors.New("plain")))
	assert.Equal(t, ErrInternal, Code(nil))
}

func TestCodeUnwrapsWrappedErrors(t *testing.T) {
	inner := Validation("custom price must not be negative", nil)
	wrapped := fmt.Errorf("saving record: %w", inner)

	assert.Equal(t, ErrValidation, Code(wrapped))
	assert.True(t, IsValidation(wrapped))
}

func TestErrorMessage(t *testing.T) {
	err := Transport("failed to save pricing", errors.New("dial tcp: refused"))
	assert.Equal(t, "failed to save pricing: dial tcp: refused", err.Error())
	assert.Equal(t, "dial tcp: refused", err.Unwrap().Error())

	bare := Precondition("a save is already in progress for this service")
	assert.Equal(t, "a save is already in progress for this service", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
