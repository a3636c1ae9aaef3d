package quilt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/cost"
	"github.com/katalvlaran/quilt/flow"
	"github.com/katalvlaran/quilt/locate"
)

// Strategy selects how placements are scheduled.
type Strategy int

const (
	// SubBlockRandom places sub-blocks anywhere on the canvas.
	SubBlockRandom Strategy = iota + 1
	// SubBlockRow fills row bands with sub-blocks.
	SubBlockRow
	// GlobalRow fills row bands with the whole pattern.
	GlobalRow
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case SubBlockRandom:
		return "subblock-random"
	case SubBlockRow:
		return "subblock-row"
	case GlobalRow:
		return "global-row"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// defaultTemperature returns k for s.
func (s Strategy) defaultTemperature() float64 {
	switch s {
	case SubBlockRandom:
		return 1
	case SubBlockRow:
		return 100
	default:
		return 10
	}
}

// Direction controls the sub-block aspect ratio.
type Direction int

const (
	// Horizontal keeps the full pattern height.
	Horizontal Direction = iota
	// Bidirectional divides both dimensions by the patch factor.
	Bidirectional
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Bidirectional:
		return "bidirectional"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// DefaultPatchFactor is the default sub-block divisor.
const DefaultPatchFactor = 8

var (
	// ErrStrategy indicates an unsupported Strategy.
	ErrStrategy = errors.New("quilt: unsupported strategy")
	// ErrDirection indicates an unsupported Direction.
	ErrDirection = errors.New("quilt: unsupported direction")
	// ErrConfig indicates sizes that cannot produce an output.
	ErrConfig = errors.New("quilt: invalid configuration")
	// ErrIterationLimit indicates the placement cap was reached before the
	// canvas filled.
	ErrIterationLimit = errors.New("quilt: iteration limit reached")
	// ErrNoProgress indicates a whole-canvas optimal placement that covers
	// no free pixel. locate.Bounds rules this out while any pixel is free.
	ErrNoProgress = errors.New("quilt: placement adds no pixel")
)

// Progress is reported after every placement.
type Progress struct {
	Iteration int
	Filled    int
	Total     int
	Row       int // current band top, or -1 outside a band
}

// Result is the outcome of a run.
type Result struct {
	Canvas     *canvas.Canvas
	Iterations int
	RunID      string
}

// Synthesizer holds a validated configuration.
type Synthesizer struct {
	cfg config
}

// New applies opts and validates the result. No canvas is allocated.
func New(opts ...Option) (*Synthesizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.strategy {
	case SubBlockRandom, SubBlockRow, GlobalRow:
	default:
		return nil, fmt.Errorf("%w: %v", ErrStrategy, cfg.strategy)
	}
	switch cfg.direction {
	case Horizontal, Bidirectional:
	default:
		return nil, fmt.Errorf("%w: %v", ErrDirection, cfg.direction)
	}
	if (cfg.height == 0) != (cfg.width == 0) {
		return nil, fmt.Errorf("%w: output %dx%d", ErrConfig, cfg.height, cfg.width)
	}
	if !cfg.tempSet {
		cfg.temperature = cfg.strategy.defaultTemperature()
	}
	if cfg.solver == nil {
		fo := flow.DefaultOptions()
		fo.Logger = cfg.logger
		cfg.solver = flow.DinicSolver{Options: fo}
	}
	return &Synthesizer{cfg: cfg}, nil
}

// SubSize returns the sub-block size for a pattern of size p.
func (s *Synthesizer) SubSize(p canvas.Size) canvas.Size {
	hRatio := 1
	if s.cfg.direction == Bidirectional {
		hRatio = s.cfg.factor
	}
	return canvas.Size{Height: p.Height / hRatio, Width: p.Width / s.cfg.factor}
}

// Run synthesizes the configured output from pattern.
//
// Steps:
//  1. Resolve the working patch size and check it fits the output.
//  2. Seed the canvas origin.
//  3. Place patches by strategy until the canvas is full.
//
// Cancellation is checked before each placement and inside the solver.
func (s *Synthesizer) Run(ctx context.Context, pattern *canvas.Patch) (*Result, error) {
	cfg := &s.cfg
	if pattern == nil || pattern.Area() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrConfig, canvas.ErrEmptyPatch)
	}
	res := &Result{RunID: uuid.NewString()}
	if cfg.height == 0 && cfg.width == 0 {
		c, err := canvas.New(pattern.Height, pattern.Width)
		if err != nil {
			return nil, err
		}
		if err = c.Seed(pattern, canvas.Size{}, cfg.rng); err != nil {
			return nil, err
		}
		res.Canvas = c
		return res, nil
	}

	// 1) Working size
	var sub canvas.Size
	work := pattern.Size()
	if cfg.strategy != GlobalRow {
		sub = s.SubSize(pattern.Size())
		if sub.Height == 0 || sub.Width == 0 {
			return nil, fmt.Errorf("%w: pattern %dx%d too small for patch factor %d",
				ErrConfig, pattern.Height, pattern.Width, cfg.factor)
		}
		work = sub
	}
	c, err := canvas.New(cfg.height, cfg.width)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if _, _, err = cost.Offsets(c, work); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	// 2) Seed
	if err = c.Seed(pattern, sub, cfg.rng); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	r := &run{
		cfg:     cfg,
		c:       c,
		pattern: pattern,
		loc:     locate.New(cfg.rng),
		sub:     sub,
		band:    work.Height,
		log: cfg.logger.With(
			slog.String("run", res.RunID),
			slog.String("strategy", cfg.strategy.String()),
			slog.Int("height", cfg.height),
			slog.Int("width", cfg.width),
		),
	}
	r.log.Info("quilt: start",
		slog.Int("patch_h", work.Height), slog.Int("patch_w", work.Width),
		slog.Float64("k", cfg.temperature))

	// 3) Fill
	if cfg.strategy == SubBlockRandom {
		err = r.fillRandom(ctx)
	} else {
		err = r.fillRows(ctx)
	}
	res.Canvas, res.Iterations = c, r.iter
	if err != nil {
		r.log.Warn("quilt: aborted", slog.Int("iterations", r.iter), slog.Any("err", err))
		return res, err
	}
	r.log.Info("quilt: done", slog.Int("iterations", r.iter))
	return res, nil
}
