package quilt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/quilt/blend"
	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/locate"
)

// maxRejects bounds consecutive uniform draws that add no pixel before the
// draw falls back to a cost-based search.
const maxRejects = 64

// run is the state of one Synthesizer.Run call.
type run struct {
	cfg     *config
	c       *canvas.Canvas
	pattern *canvas.Patch
	loc     *locate.Locator
	sub     canvas.Size
	band    int
	iter    int
	log     *slog.Logger
}

func (r *run) request(row int) locate.Request {
	return locate.Request{
		Mode:        locate.Optimal,
		Temperature: r.cfg.temperature,
		Row:         row,
		Col:         locate.Any,
		Sub:         r.sub,
	}
}

// fillRandom places sub-blocks anywhere until the canvas is full.
func (r *run) fillRandom(ctx context.Context) error {
	for !r.c.Full() {
		req := r.request(locate.Any)
		if r.cfg.uniform {
			req.Mode = locate.Random
		}
		if _, err := r.place(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// fillRows runs the band loop.
func (r *run) fillRows(ctx context.Context) error {
	h, w := r.c.Height, r.c.Width
	row := 0
	for !r.c.Full() {
		for !r.c.Full() && r.c.FilledCount() < (row+r.band)*w {
			if _, err := r.place(ctx, r.request(row)); err != nil {
				return err
			}
		}
		if r.c.Full() {
			break
		}
		if h-r.band-row < r.band/2 {
			row = h - r.band
			continue
		}
		pl, err := r.place(ctx, r.request(locate.Any))
		if err != nil {
			return err
		}
		row = pl.Top
	}
	return nil
}

// place locates, solves, and commits one patch.
//
// Steps:
//  1. Check cancellation and the iteration cap.
//  2. Locate per req; a placement covering only filled pixels is redrawn
//     (uniform mode) or replaced by a whole-canvas search.
//  3. blend.Place and report progress.
func (r *run) place(ctx context.Context, req locate.Request) (canvas.Placement, error) {
	// 1) Guards
	if err := ctx.Err(); err != nil {
		return canvas.Placement{}, err
	}
	if r.cfg.maxIterations > 0 && r.iter >= r.cfg.maxIterations {
		return canvas.Placement{}, fmt.Errorf("%w: %d placements, %d/%d filled",
			ErrIterationLimit, r.iter, r.c.FilledCount(), r.c.Area())
	}

	// 2) Locate
	pl, err := r.loc.Locate(r.c, r.pattern, req)
	if err != nil {
		return canvas.Placement{}, err
	}
	for rejects := 0; pl.Overlap(r.c) == pl.Patch.Area(); rejects++ {
		switch {
		case req.Mode == locate.Random && rejects < maxRejects:
		case req.Mode == locate.Random:
			req.Mode = locate.Optimal
		case req.Row != locate.Any:
			r.log.Debug("quilt: row placement stalled", slog.Int("row", req.Row))
			req.Row = locate.Any
		default:
			// Unreachable while the canvas has a free pixel.
			return canvas.Placement{}, fmt.Errorf("%w: %d/%d filled", ErrNoProgress, r.c.FilledCount(), r.c.Area())
		}
		if pl, err = r.loc.Locate(r.c, r.pattern, req); err != nil {
			return canvas.Placement{}, err
		}
	}

	// 3) Blend
	st, err := blend.Place(ctx, r.c, pl, r.cfg.solver, r.cfg.seam)
	if err != nil {
		return canvas.Placement{}, err
	}
	r.iter++
	r.log.Debug("quilt: placed",
		slog.Int("iter", r.iter),
		slog.Int("top", pl.Top), slog.Int("left", pl.Left),
		slog.Int("nodes", st.Nodes), slog.Int("seam_nodes", st.SeamNodes),
		slog.Int("added", st.Added), slog.Int("replaced", st.Replaced))
	if r.cfg.progress != nil {
		r.cfg.progress(Progress{Iteration: r.iter, Filled: r.c.FilledCount(), Total: r.c.Area(), Row: req.Row})
	}
	return pl, nil
}
