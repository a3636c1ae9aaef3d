package seam_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/seam"
)

func TestWeight_Norms(t *testing.T) {
	black := canvas.Color{}
	c := canvas.Color{3, 4, 0}
	cases := []struct {
		name string
		norm float64
		want float64
	}{
		{"L1", 1, 7},
		{"L2", 2, 5},
		{"LInf", math.Inf(1), 4},
		{"Default", 0, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := seam.Options{Norm: tc.norm}
			// op differs from np, oq equals nq.
			got := seam.Weight(black, c, c, c, opts)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestWeight_Symmetric(t *testing.T) {
	op, oq := canvas.Color{1, 2, 3}, canvas.Color{4, 4, 4}
	np, nq := canvas.Color{0, 9, 1}, canvas.Color{7, 0, 2}
	for _, opts := range []seam.Options{seam.DefaultOptions(), {Norm: 1}} {
		assert.InDelta(t, seam.Weight(op, oq, np, nq, opts), seam.Weight(np, nq, op, oq, opts), 1e-12)
		assert.InDelta(t, seam.Weight(op, oq, np, nq, opts), seam.Weight(oq, op, nq, np, opts), 1e-12)
	}
}

func TestWeight_GradientEnergy(t *testing.T) {
	op, oq := canvas.Color{0, 0, 0}, canvas.Color{1, 0, 0}
	np, nq := canvas.Color{0, 0, 0}, canvas.Color{0, 0, 0}
	opts := seam.DefaultOptions()

	// raw cost 1, gradient (1 + 0)·2
	assert.InDelta(t, 0.5, seam.Weight(op, oq, np, nq, opts), 1e-6)

	opts.GradientEnergy = false
	assert.InDelta(t, 1.0, seam.Weight(op, oq, np, nq, opts), 1e-12)
}

func TestWeight_IdenticalIsZero(t *testing.T) {
	a, b := canvas.Color{0.2, 0.4, 0.6}, canvas.Color{0.9, 0.1, 0}
	assert.Zero(t, seam.Weight(a, b, a, b, seam.DefaultOptions()))
}

func TestWeight_FlatRegionFinite(t *testing.T) {
	a, b := canvas.Color{1, 1, 1}, canvas.Color{0, 0, 0}
	w := seam.Weight(a, a, b, b, seam.DefaultOptions())
	assert.False(t, math.IsInf(w, 0) || math.IsNaN(w))
	assert.Greater(t, w, 1e6)
}
