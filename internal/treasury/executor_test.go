package treasury_test

import (
	"math"
	"testing"

	"github.com/snektrials/backend/internal/treasury"
	"github.com/stretchr/testify/require"
)

func Test_Scale(t *testing.T) {
	require.Equal(t, int64(15), treasury.Scale(10, 1.5))
	require.Equal(t, int64(3), treasury.Scale(10, 0.33))
	require.Equal(t, int64(20), treasury.Scale(10, 2))

	// Invalid multipliers fall back to the unscaled amount.
	require.Equal(t, int64(10), treasury.Scale(10, 0))
	require.Equal(t, int64(10), treasury.Scale(10, -1))
	require.Equal(t, int64(10), treasury.Scale(10, math.NaN()))
	require.Equal(t, int64(10), treasury.Scale(10, math.Inf(1)))

	// A multiplier that floors a positive amount to zero is ignored.
	require.Equal(t, int64(10), treasury.Scale(10, 0.01))
}

func Test_ToRaw(t *testing.T) {
	require.Equal(t, int64(100), treasury.ToRaw(100, 0))
	require.Equal(t, int64(100_000_000), treasury.ToRaw(100, 6))
}
