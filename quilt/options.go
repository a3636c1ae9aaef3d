// SPDX-License-Identifier: MIT
// Package: quilt
//
// options.go: functional options for the Synthesizer.
//
// Option constructors panic on meaningless inputs (nil callbacks,
// non-positive factors). Enumerated values (strategy, direction) are checked
// by New and reported as errors.

package quilt

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/flow"
	"github.com/katalvlaran/quilt/seam"
)

// Option customizes a Synthesizer.
type Option func(*config)

type config struct {
	height, width int
	direction     Direction
	factor        int
	strategy      Strategy
	temperature   float64
	tempSet       bool
	rng           canvas.Source
	solver        flow.Solver
	seam          seam.Options
	uniform       bool
	maxIterations int
	logger        *slog.Logger
	progress      func(Progress)
}

// defaultConfig: 0×0 output, Horizontal, factor 8, SubBlockRow, seed 1,
// Dinic, seam.DefaultOptions, no iteration cap, silent logger.
func defaultConfig() config {
	return config{
		direction: Horizontal,
		factor:    DefaultPatchFactor,
		strategy:  SubBlockRow,
		rng:       canvas.NewSource(0),
		seam:      seam.DefaultOptions(),
		logger:    newNopLogger(),
	}
}

// WithSize sets the output height and width. Both zero returns the pattern
// unchanged. Panics on negative values.
func WithSize(height, width int) Option {
	if height < 0 || width < 0 {
		panic("quilt: WithSize(negative)")
	}
	return func(c *config) {
		c.height, c.width = height, width
	}
}

// WithDirection selects Horizontal or Bidirectional generation.
func WithDirection(d Direction) Option {
	return func(c *config) { c.direction = d }
}

// WithPatchFactor sets the sub-block divisor. Panics on n < 1.
func WithPatchFactor(n int) Option {
	if n < 1 {
		panic("quilt: WithPatchFactor(<1)")
	}
	return func(c *config) { c.factor = n }
}

// WithStrategy selects the fill strategy.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithTemperature overrides the strategy's default k.
// Panics on negative or NaN.
func WithTemperature(k float64) Option {
	if k < 0 || math.IsNaN(k) {
		panic("quilt: WithTemperature(invalid)")
	}
	return func(c *config) {
		c.temperature = k
		c.tempSet = true
	}
}

// WithSeed uses a deterministic source; seed 0 maps to 1.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = canvas.NewSource(seed) }
}

// WithRand injects a random source. Panics on nil.
func WithRand(r canvas.Source) Option {
	if r == nil {
		panic("quilt: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSolver replaces the default Dinic solver. Panics on nil.
func WithSolver(s flow.Solver) Option {
	if s == nil {
		panic("quilt: WithSolver(nil)")
	}
	return func(c *config) { c.solver = s }
}

// WithNorm sets the color distance norm order. Panics on p ≤ 0 or NaN.
func WithNorm(p float64) Option {
	if !(p > 0) {
		panic("quilt: WithNorm(invalid)")
	}
	return func(c *config) { c.seam.Norm = p }
}

// WithGradientEnergy toggles gradient-normalized seam weights.
func WithGradientEnergy(on bool) Option {
	return func(c *config) { c.seam.GradientEnergy = on }
}

// WithOldSeams toggles seam memory in the cut graph.
func WithOldSeams(on bool) Option {
	return func(c *config) { c.seam.OldSeams = on }
}

// WithUniformPlacement makes SubBlockRandom draw offsets uniformly instead
// of by cost. Draws that would cover only filled pixels are redrawn.
func WithUniformPlacement() Option {
	return func(c *config) { c.uniform = true }
}

// WithMaxIterations caps the number of placements per run; 0 disables the
// cap. Panics on negative.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic("quilt: WithMaxIterations(negative)")
	}
	return func(c *config) { c.maxIterations = n }
}

// WithLogger enables structured logging. nil restores the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = newNopLogger()
		}
		c.logger = l
	}
}

// WithProgress registers a callback invoked after every placement.
// Panics on nil.
func WithProgress(fn func(Progress)) Option {
	if fn == nil {
		panic("quilt: WithProgress(nil)")
	}
	return func(c *config) { c.progress = fn }
}
