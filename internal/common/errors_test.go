package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := fmt.Errorf("add connection: %w", &ValidationError{Fields: []string{"name", "hostname"}, Reason: "required"})

	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"name", "hostname"}, ve.Fields)
	assert.Equal(t, "add connection: validation error: name, hostname (required)", err.Error())
}

func TestNewValidationError_Message(t *testing.T) {
	err := NewValidationError("port", "must be a number")
	assert.Equal(t, "validation error: port (must be a number)", err.Error())
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestValidationError_NoFields(t *testing.T) {
	err := &ValidationError{}
	assert.Equal(t, "validation error", err.Error())
}
