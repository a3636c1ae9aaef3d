package cost

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomDense(rng *rand.Rand, r, c int) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	m.Apply(func(_, _ int, _ float64) float64 { return float64(rng.Intn(511) - 255) }, m)
	return m
}

func TestCorrelateFFT_MatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cases := []struct{ ih, iw, kh, kw int }{
		{8, 8, 3, 3},
		{17, 31, 5, 7}, // prime sides pad to 18×32
		{20, 64, 20, 1},
		{33, 40, 12, 12},
	}
	for _, tc := range cases {
		imgs := []*mat.Dense{randomDense(rng, tc.ih, tc.iw), randomDense(rng, tc.ih, tc.iw)}
		kers := []*mat.Dense{randomDense(rng, tc.kh, tc.kw), randomDense(rng, tc.kh, tc.kw)}
		rows, cols := tc.ih-tc.kh+1, tc.iw-tc.kw+1

		want := mat.NewDense(rows, cols, nil)
		for k := range imgs {
			correlateDirect(want, imgs[k], kers[k])
		}
		got := mat.NewDense(rows, cols, nil)
		correlateFFT(got, imgs, kers)

		require.True(t, mat.EqualApprox(want, got, 1e-6), "case %+v", tc)
	}
}

func TestUseFFT(t *testing.T) {
	// Small kernels never leave the direct sum.
	assert.False(t, useFFT(500, 500, 10, 10, 509, 509, 3))
	// Whole-canvas table with a large patch.
	assert.True(t, useFFT(113, 497, 16, 16, 128, 512, 3))
	// A single offset row is cheaper directly.
	assert.False(t, useFFT(1, 497, 16, 16, 16, 512, 3))
}

func TestFFTSize(t *testing.T) {
	for n, want := range map[int]int{1: 1, 7: 8, 11: 12, 31: 32, 97: 100, 128: 128, 509: 512} {
		assert.Equal(t, want, fftSize(n), "n=%d", n)
	}
}
