// SPDX-License-Identifier: MIT
// Package: quilt/seam
//
// weight.go: pairwise matching cost between old and new content.

package seam

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/quilt/canvas"
)

// Options configures the pairwise weight and the graph builder.
type Options struct {
	// Norm is the vector norm order used for color distances (1, 2, +Inf, or any p > 0).
	Norm float64
	// GradientEnergy divides the matching cost by the local color gradient,
	// steering cuts toward high-frequency boundaries.
	GradientEnergy bool
	// Epsilon keeps the gradient division finite.
	Epsilon float64
	// OldSeams enables auxiliary nodes for recorded seams.
	OldSeams bool
}

// DefaultOptions returns Norm=2, GradientEnergy=true, Epsilon=1e-8, OldSeams=true.
func DefaultOptions() Options {
	return Options{Norm: 2, GradientEnergy: true, Epsilon: 1e-8, OldSeams: true}
}

func (o Options) normalized() Options {
	if o.Norm <= 0 {
		o.Norm = 2
	}
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-8
	}
	return o
}

// distance returns ‖a − b‖ in the given norm.
func distance(a, b canvas.Color, norm float64) float64 {
	var d [3]float64
	for i := range d {
		d[i] = a[i] - b[i]
	}
	return floats.Norm(d[:], norm)
}

// Weight returns the cost of cutting between adjacent pixels p and q when p
// keeps one source and q takes the other:
//
//	w = ‖op − np‖ + ‖oq − nq‖
//
// and, with GradientEnergy,
//
//	w /= (‖op − oq‖ + ‖np − nq‖)·2 + ε
//
// op/oq are the old colors, np/nq the new ones.
// Complexity: O(1).
func Weight(op, oq, np, nq canvas.Color, opts Options) float64 {
	opts = opts.normalized()
	w := distance(op, np, opts.Norm) + distance(oq, nq, opts.Norm)
	if opts.GradientEnergy {
		w /= (distance(op, oq, opts.Norm)+distance(np, nq, opts.Norm))*2 + opts.Epsilon
	}
	return w
}
