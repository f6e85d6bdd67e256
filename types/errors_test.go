package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("wrapped errors keep identity", func(t *testing.T) {
		wrapped := fmt.Errorf("set allocation: %w", ErrStateConflict)
		require.True(t, errors.Is(wrapped, ErrStateConflict))
		require.False(t, errors.Is(wrapped, ErrValidation))
	})

	t.Run("all errors are distinct", func(t *testing.T) {
		allErrors := []error{
			ErrInvalidConfig,
			ErrNotInitialised,
			ErrSetupSourceRequired,
			ErrSnapshotStoreRequired,
			ErrValidation,
			ErrStateConflict,
			ErrInfeasible,
			ErrUnknownAlgorithm,
			ErrFormat,
			ErrSnapshotNotFound,
			ErrStoreUnavailable,
		}

		for i, a := range allErrors {
			for j, b := range allErrors {
				if i == j {
					continue
				}
				require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	})
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"ILP", AlgorithmILP, false},
		{"ilp", AlgorithmILP, false},
		{" GS ", AlgorithmGS, false},
		{"hungarian", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownAlgorithm)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.True(t, got.Valid())
		})
	}

	t.Run("text round trip", func(t *testing.T) {
		text, err := AlgorithmGS.MarshalText()
		require.NoError(t, err)
		require.Equal(t, "GS", string(text))

		var a Algorithm
		require.NoError(t, a.UnmarshalText(text))
		require.Equal(t, AlgorithmGS, a)

		_, err = Algorithm(42).MarshalText()
		require.ErrorIs(t, err, ErrUnknownAlgorithm)
	})
}
