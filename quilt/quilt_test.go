package quilt_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quilt/blend"
	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/cost"
	"github.com/katalvlaran/quilt/flow"
	"github.com/katalvlaran/quilt/quilt"
)

type failingSolver struct{}

func (failingSolver) MinCut(context.Context, int, []flow.Edge, []flow.Terminal) ([]bool, error) {
	return nil, errors.New("no cut today")
}

// texture returns an h×w pattern of seeded noise over vertical stripes.
func texture(t testing.TB, h, w int, seed int64) *canvas.Patch {
	t.Helper()
	rng := canvas.NewSource(seed)
	p, err := canvas.NewPatch(h, w)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := float64(x%4) * 60
			p.Set(y, x, canvas.Color{base + rng.Float64()*20, 128 + rng.Float64()*30, 255 - base})
		}
	}
	return p
}

func palette(p *canvas.Patch) map[canvas.Color]bool {
	out := make(map[canvas.Color]bool, len(p.Pix))
	for _, c := range p.Pix {
		out[c] = true
	}
	return out
}

// assertComplete checks full coverage, seam consistency, and that every
// output pixel was copied from the pattern.
func assertComplete(t *testing.T, res *quilt.Result, pattern *canvas.Patch) {
	t.Helper()
	c := res.Canvas
	require.True(t, c.Full(), "filled %d/%d", c.FilledCount(), c.Area())
	for _, f := range c.FilledMask() {
		require.True(t, f)
	}
	require.NoError(t, c.CheckSeams())
	colors := palette(pattern)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			require.True(t, colors[c.At(y, x)], "pixel (%d,%d) not from pattern", y, x)
		}
	}
	assert.NotEmpty(t, res.RunID)
}

func TestNew_Validation(t *testing.T) {
	_, err := quilt.New(quilt.WithStrategy(quilt.Strategy(9)))
	assert.True(t, errors.Is(err, quilt.ErrStrategy))

	_, err = quilt.New(quilt.WithDirection(quilt.Direction(4)))
	assert.True(t, errors.Is(err, quilt.ErrDirection))

	_, err = quilt.New(quilt.WithSize(10, 0))
	assert.True(t, errors.Is(err, quilt.ErrConfig))

	s, err := quilt.New()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { quilt.WithSize(-1, 4) })
	assert.Panics(t, func() { quilt.WithPatchFactor(0) })
	assert.Panics(t, func() { quilt.WithTemperature(-1) })
	assert.Panics(t, func() { quilt.WithRand(nil) })
	assert.Panics(t, func() { quilt.WithSolver(nil) })
	assert.Panics(t, func() { quilt.WithNorm(0) })
	assert.Panics(t, func() { quilt.WithMaxIterations(-1) })
	assert.Panics(t, func() { quilt.WithProgress(nil) })
	assert.NotPanics(t, func() { quilt.WithLogger(nil) })
}

func TestSubSize(t *testing.T) {
	p := canvas.Size{Height: 20, Width: 40}

	s, err := quilt.New(quilt.WithPatchFactor(4))
	require.NoError(t, err)
	assert.Equal(t, canvas.Size{Height: 20, Width: 10}, s.SubSize(p))

	s, err = quilt.New(quilt.WithPatchFactor(4), quilt.WithDirection(quilt.Bidirectional))
	require.NoError(t, err)
	assert.Equal(t, canvas.Size{Height: 5, Width: 10}, s.SubSize(p))
}

func TestRun_ZeroSizeReturnsPattern(t *testing.T) {
	pattern := texture(t, 6, 9, 1)
	s, err := quilt.New()
	require.NoError(t, err)

	res, err := s.Run(context.Background(), pattern)
	require.NoError(t, err)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, pattern, res.Canvas.Patch())
	assert.True(t, res.Canvas.Full())
}

func TestRun_ConfigErrors(t *testing.T) {
	ctx := context.Background()

	s, err := quilt.New(quilt.WithSize(10, 10))
	require.NoError(t, err)
	_, err = s.Run(ctx, nil)
	assert.True(t, errors.Is(err, quilt.ErrConfig))

	// Width 4 / factor 8 leaves no sub-block.
	_, err = s.Run(ctx, texture(t, 4, 4, 1))
	assert.True(t, errors.Is(err, quilt.ErrConfig))

	s, err = quilt.New(quilt.WithSize(10, 40), quilt.WithStrategy(quilt.GlobalRow))
	require.NoError(t, err)
	_, err = s.Run(ctx, texture(t, 20, 20, 1))
	assert.True(t, errors.Is(err, quilt.ErrConfig))
	assert.True(t, errors.Is(err, cost.ErrPatchTooLarge))
}

func TestRun_Strategies(t *testing.T) {
	pattern := texture(t, 12, 16, 3)
	cases := []struct {
		name string
		opts []quilt.Option
	}{
		{"SubBlockRow", []quilt.Option{quilt.WithStrategy(quilt.SubBlockRow), quilt.WithPatchFactor(2)}},
		{"SubBlockRowBidirectional", []quilt.Option{quilt.WithStrategy(quilt.SubBlockRow), quilt.WithPatchFactor(2), quilt.WithDirection(quilt.Bidirectional)}},
		{"SubBlockRandom", []quilt.Option{quilt.WithStrategy(quilt.SubBlockRandom), quilt.WithPatchFactor(2)}},
		{"SubBlockRandomUniform", []quilt.Option{quilt.WithStrategy(quilt.SubBlockRandom), quilt.WithPatchFactor(2), quilt.WithUniformPlacement()}},
		{"GlobalRow", []quilt.Option{quilt.WithStrategy(quilt.GlobalRow)}},
		{"EdmondsKarp", []quilt.Option{quilt.WithPatchFactor(2), quilt.WithSolver(flow.EdmondsKarpSolver{Options: flow.DefaultOptions()})}},
		{"NoSeamMemoryL1", []quilt.Option{quilt.WithPatchFactor(2), quilt.WithOldSeams(false), quilt.WithNorm(1), quilt.WithGradientEnergy(false)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := append([]quilt.Option{quilt.WithSize(24, 40), quilt.WithSeed(11)}, tc.opts...)
			s, err := quilt.New(opts...)
			require.NoError(t, err)

			res, err := s.Run(context.Background(), pattern)
			require.NoError(t, err)
			assertComplete(t, res, pattern)
			assert.Positive(t, res.Iterations)
			assert.LessOrEqual(t, res.Iterations, res.Canvas.Area())
		})
	}
}

func TestRun_IterationBound(t *testing.T) {
	if testing.Short() {
		t.Skip("long synthesis")
	}
	const h, w = 40, 80
	pattern := texture(t, 20, 20, 5)
	s, err := quilt.New(quilt.WithSize(h, w), quilt.WithSeed(2))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), pattern)
	require.NoError(t, err)
	assertComplete(t, res, pattern)

	// Thin sub-blocks add about one column each, so allow three times the
	// unit-factor count.
	area := s.SubSize(pattern.Size()).Area()
	assert.LessOrEqual(t, res.Iterations, 3*h*w/area)
}

func TestRun_Reproducible(t *testing.T) {
	pattern := texture(t, 10, 12, 8)
	run := func(seed int64) *canvas.Patch {
		s, err := quilt.New(quilt.WithSize(20, 30), quilt.WithPatchFactor(2), quilt.WithSeed(seed))
		require.NoError(t, err)
		res, err := s.Run(context.Background(), pattern)
		require.NoError(t, err)
		return res.Canvas.Patch()
	}
	assert.Equal(t, run(4), run(4))
}

func TestRun_ProgressMonotone(t *testing.T) {
	var reports []quilt.Progress
	s, err := quilt.New(
		quilt.WithSize(16, 32),
		quilt.WithPatchFactor(2),
		quilt.WithProgress(func(p quilt.Progress) { reports = append(reports, p) }),
	)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), texture(t, 8, 12, 2))
	require.NoError(t, err)
	require.Len(t, reports, res.Iterations)

	prev := 0
	for i, p := range reports {
		assert.Equal(t, i+1, p.Iteration)
		assert.Equal(t, 16*32, p.Total)
		assert.Greater(t, p.Filled, prev, "placement %d added nothing", p.Iteration)
		prev = p.Filled
	}
	assert.Equal(t, 16*32, prev)
}

func TestRun_Cancellation(t *testing.T) {
	pattern := texture(t, 8, 12, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := quilt.New(quilt.WithSize(16, 32), quilt.WithPatchFactor(2))
	require.NoError(t, err)
	res, err := s.Run(ctx, pattern)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, res.Iterations)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	s, err = quilt.New(
		quilt.WithSize(16, 32),
		quilt.WithPatchFactor(2),
		quilt.WithProgress(func(p quilt.Progress) {
			if p.Iteration == 3 {
				cancel()
			}
		}),
	)
	require.NoError(t, err)
	res, err = s.Run(ctx, pattern)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 3, res.Iterations)
	assert.NoError(t, res.Canvas.CheckSeams())
}

func TestRun_IterationLimit(t *testing.T) {
	s, err := quilt.New(quilt.WithSize(16, 32), quilt.WithPatchFactor(2), quilt.WithMaxIterations(2))
	require.NoError(t, err)
	res, err := s.Run(context.Background(), texture(t, 8, 12, 2))
	assert.True(t, errors.Is(err, quilt.ErrIterationLimit))
	assert.Equal(t, 2, res.Iterations)
}

func TestRun_SolverFailure(t *testing.T) {
	s, err := quilt.New(quilt.WithSize(16, 32), quilt.WithPatchFactor(2), quilt.WithSolver(failingSolver{}))
	require.NoError(t, err)
	res, err := s.Run(context.Background(), texture(t, 8, 12, 2))
	assert.True(t, errors.Is(err, blend.ErrSolve))
	assert.Zero(t, res.Iterations)
	assert.Equal(t, 8*6, res.Canvas.FilledCount(), "only the seed is committed")
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := quilt.New(quilt.WithSize(12, 24), quilt.WithPatchFactor(2), quilt.WithLogger(logger))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), texture(t, 6, 8, 1))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "quilt: start")
	assert.Contains(t, out, "quilt: placed")
	assert.Contains(t, out, "quilt: done")
	assert.Contains(t, out, "run="+res.RunID)
	assert.Contains(t, out, "strategy=subblock-row")
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "subblock-random", quilt.SubBlockRandom.String())
	assert.Equal(t, "global-row", quilt.GlobalRow.String())
	assert.Equal(t, "Strategy(0)", quilt.Strategy(0).String())
	assert.Equal(t, "bidirectional", quilt.Bidirectional.String())
	assert.Equal(t, "Direction(7)", quilt.Direction(7).String())
}
