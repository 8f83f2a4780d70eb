package bcrypt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name: "with field",
			err: &ValidationError{
				Field:   "cost",
				Value:   99,
				Message: "cost 99 outside [4, 31]",
				Err:     ErrInvalidCost,
			},
			wantMsg: "validation error: cost: cost 99 outside [4, 31]",
		},
		{
			name: "without field",
			err: &ValidationError{
				Message: "invalid configuration",
			},
			wantMsg: "validation error: invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.err.Err, tt.err.Unwrap())
		})
	}
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		err     *DecodeError
		wantMsg string
		wantIs  []error
		notIs   []error
	}{
		{
			name: "with offset and cause",
			err: &DecodeError{
				Kind:    ErrMalformedHash,
				Offset:  4,
				Message: "cost 40 outside [4, 31]",
				Err:     ErrInvalidCost,
			},
			wantMsg: "decode error at offset 4: cost 40 outside [4, 31]",
			wantIs:  []error{ErrMalformedHash, ErrInvalidCost},
			notIs:   []error{ErrInvalidSalt},
		},
		{
			name: "without offset",
			err: &DecodeError{
				Kind:    ErrInvalidSalt,
				Offset:  -1,
				Message: "trailing data",
			},
			wantMsg: "decode error: trailing data",
			wantIs:  []error{ErrInvalidSalt},
			notIs:   []error{ErrMalformedHash},
		},
		{
			name: "cause equal to kind",
			err: &DecodeError{
				Kind:    ErrInvalidSalt,
				Offset:  0,
				Message: "bad salt",
				Err:     ErrInvalidSalt,
			},
			wantMsg: "decode error at offset 0: bad salt",
			wantIs:  []error{ErrInvalidSalt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			for _, target := range tt.wantIs {
				assert.ErrorIs(t, tt.err, target)
			}
			for _, target := range tt.notIs {
				assert.NotErrorIs(t, tt.err, target)
			}
		})
	}

	dup := &DecodeError{Kind: ErrInvalidSalt, Err: ErrInvalidSalt}
	assert.Len(t, dup.Unwrap(), 1, "identical kind and cause")
}

func TestErrorCheckers(t *testing.T) {
	validationErr := NewValidationError("rounds", 0, "rounds must be at least 1", ErrInvalidRounds)
	decodeErr := newHashError(3, "bad version", ErrUnsupportedVersion)
	wrapped := fmt.Errorf("login: %w", decodeErr)

	assert.True(t, IsValidationError(validationErr))
	assert.False(t, IsValidationError(decodeErr))
	assert.True(t, IsDecodeError(wrapped), "IsDecodeError should see through wrapping")
	assert.False(t, IsDecodeError(validationErr))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsDecodeError(nil))
}

func TestErrorConstructors(t *testing.T) {
	err := newSaltError(7, "salt too short", nil)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrInvalidSalt, de.Kind)
	assert.Equal(t, 7, de.Offset)
	assert.NoError(t, de.Err)

	err = newHashError(-1, "trailing data", nil)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrMalformedHash, de.Kind)
	assert.Equal(t, -1, de.Offset)

	err = NewValidationError("password", 3, "nul byte at offset 3", ErrEmbeddedNul)
	assert.ErrorIs(t, err, ErrEmbeddedNul)
}
