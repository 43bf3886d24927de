package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnknownBlockType", ErrUnknownBlockType},
		{"ErrBlockNotFound", ErrBlockNotFound},
		{"ErrDuplicateBlockID", ErrDuplicateBlockID},
		{"ErrNotContainer", ErrNotContainer},
		{"ErrMalformedTemplate", ErrMalformedTemplate},
		{"ErrValidationFailed", ErrValidationFailed},
		{"ErrPageNotFound", ErrPageNotFound},
		{"ErrNoActiveTree", ErrNoActiveTree},
		{"ErrNoSession", ErrNoSession},
		{"ErrPersistence", ErrPersistence},
		{"ErrNetworkDegraded", ErrNetworkDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that persistence failures are not mistaken for not-found
func TestErrors_Distinct(t *testing.T) {
	wrapped := fmt.Errorf("save site: %w", ErrPersistence)
	assert.True(t, errors.Is(wrapped, ErrPersistence))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(ErrBlockNotFound, ErrNotFound))
}

func TestNewValidationError_Empty(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
	assert.NoError(t, NewValidationError([]string{}))
}

func TestValidationError_CarriesAllMessages(t *testing.T) {
	msgs := []string{"first is required", "second is required"}
	err := NewValidationError(msgs)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrValidationFailed)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, msgs, vErr.Messages)
	assert.Contains(t, err.Error(), "first is required")
	assert.Contains(t, err.Error(), "second is required")

	// Messages are copied.
	msgs[0] = "changed"
	assert.Equal(t, "first is required", vErr.Messages[0])
}
