package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReasonOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ReasonNone},
		{"bare sentinel", ErrOccupied, ReasonOccupied},
		{"wrapped sentinel", fmt.Errorf("play (3,4): %w", ErrSuicide), ReasonSuicide},
		{"double wrapped", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrKoViolation)), ReasonKoViolation},
		{"import", fmt.Errorf("%w: bad cell", ErrImport), ReasonImportError},
		{"unknown", errors.New("redis is down"), ReasonInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ReasonOf(tt.err))
		})
	}
}

func TestErrorCategories(t *testing.T) {
	require.True(t, IsInputError(ErrOutOfBounds))
	require.True(t, IsInputError(fmt.Errorf("x: %w", ErrInvalidSize)))
	require.False(t, IsInputError(ErrOccupied))

	require.True(t, IsRuleViolation(ErrSuicide))
	require.True(t, IsRuleViolation(ErrKoViolation))
	require.False(t, IsRuleViolation(ErrGameOver))

	require.True(t, IsStateError(ErrNoFuture))
	require.True(t, IsStateError(fmt.Errorf("undo: %w", ErrNoHistory)))
	require.False(t, IsStateError(ErrImport))
}
