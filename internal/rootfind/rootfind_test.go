package rootfind_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

func TestNewton_Quadratic(t *testing.T) {
	// x^2 + x - 1 has its positive root at the golden ratio conjugate.
	f := func(x float64) (float64, error) { return x*x + x - 1, nil }

	got, err := rootfind.Newton(0, f)
	require.NoError(t, err)

	want := (-1 + math.Sqrt(5)) / 2
	assert.InDelta(t, want, got, rootfind.Tolerance)
}

func TestNewton_AngularResidualAcrossSeam(t *testing.T) {
	// A body moving 1°/day crosses 0° at x=10; the raw longitude jumps 360 → 0.
	longitude := func(x float64) float64 { return rootfind.Norm360(350 + x) }
	f := func(x float64) (float64, error) {
		return rootfind.Wrap180(longitude(x) - 0), nil
	}

	got, err := rootfind.Newton(2, f)
	require.NoError(t, err)
	assert.InDelta(t, 10, got, 1e-6)
}

func TestNewton_ExactRoot(t *testing.T) {
	calls := 0
	f := func(x float64) (float64, error) {
		calls++
		return x - 3, nil
	}

	got, err := rootfind.Newton(3, f)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
	assert.Equal(t, 1, calls)
}

func TestNewton_NoRealRoot(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x + 1, nil }

	_, err := rootfind.Newton(0.5, f)
	assert.ErrorIs(t, err, rootfind.ErrNonConvergence)
}

func TestNewton_FlatFunction(t *testing.T) {
	f := func(float64) (float64, error) { return 2, nil }

	_, err := rootfind.Newton(0, f)
	assert.ErrorIs(t, err, rootfind.ErrNonConvergence)
}

func TestNewton_PropagatesResidualError(t *testing.T) {
	boom := errors.New("ephemeris unavailable")
	f := func(x float64) (float64, error) {
		if x > 1 {
			return 0, boom
		}
		return x - 5, nil
	}

	_, err := rootfind.Newton(0, f)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, rootfind.ErrNonConvergence)
}

func TestWrap180_Range(t *testing.T) {
	inputs := []float64{-1080, -540, -360.5, -180, -179.999, -0.0, 0, 45, 179.5, 180, 180.0001, 359.9, 360, 540, 721.25, 1e6 + 0.3}
	for _, r := range inputs {
		w := rootfind.Wrap180(r)
		assert.Greater(t, w, -180.0, "r=%v", r)
		assert.LessOrEqual(t, w, 180.0, "r=%v", r)

		// Idempotent and 360-periodic.
		assert.InDelta(t, w, rootfind.Wrap180(w), 1e-9, "r=%v", r)
		assert.InDelta(t, w, rootfind.Wrap180(r+360), 1e-6, "r=%v", r)
		assert.InDelta(t, w, rootfind.Wrap180(r-720), 1e-6, "r=%v", r)
	}
}

func TestWrap180_Boundaries(t *testing.T) {
	assert.Equal(t, 180.0, rootfind.Wrap180(-180))
	assert.Equal(t, 180.0, rootfind.Wrap180(180))
	assert.Equal(t, 180.0, rootfind.Wrap180(540))
	assert.InDelta(t, -173.9, rootfind.Wrap180(186.1), 1e-9)
	assert.InDelta(t, 10, rootfind.Wrap180(-350), 1e-9)
}

func TestNorm360(t *testing.T) {
	assert.Equal(t, 0.0, rootfind.Norm360(360))
	assert.Equal(t, 0.0, rootfind.Norm360(-720))
	assert.InDelta(t, 345, rootfind.Norm360(-15), 1e-9)
	assert.InDelta(t, 15, rootfind.Norm360(375), 1e-9)
	for _, r := range []float64{-1e-18, -1e-12, 1e-12, 359.999999} {
		n := rootfind.Norm360(r)
		assert.GreaterOrEqual(t, n, 0.0)
		assert.Less(t, n, 360.0)
	}
}
