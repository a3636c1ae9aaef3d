// Package blend applies a min-cut labeling to the canvas.
//
// Commit writes the new patch wherever the cut says "new" (and wherever the
// canvas was still empty), records every pair the cut separates in seam
// memory, forgets seams the new patch paints over, and marks the whole
// footprint filled.
//
// Place runs one full placement as a single transaction:
// seam.Build → Solver.MinCut → Commit. Nothing is written unless the solver
// succeeds.
package blend

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/flow"
	"github.com/katalvlaran/quilt/seam"
)

var (
	// ErrPartition indicates a labeling shorter than the graph's pixel
	// nodes. Labels of seam nodes are never read.
	ErrPartition = errors.New("blend: partition does not cover pixel nodes")
	// ErrSolve wraps a min-cut solver failure; the canvas is left untouched.
	ErrSolve = errors.New("blend: min-cut solve failed")
)

// Stats summarizes one committed placement.
type Stats struct {
	Nodes     int // pixel + seam nodes handed to the solver
	SeamNodes int // reopened old seams
	Edges     int
	Added     int // pixels that were unfilled before the commit
	Replaced  int // filled pixels relabeled "new"
	Written   int // seam records written
	Cleared   int // seam records painted over
}

// Commit applies sourceSide (true = new patch) to the footprint of g.
//
// Steps:
//  1. For each pair inside the footprint that was filled before the commit:
//     opposite labels ⇒ write a seam record (weight and both color pairs);
//     both labeled new ⇒ clear any recorded seam.
//  2. Copy the patch into every unfilled or new-labeled pixel.
//  3. Mark the footprint filled.
//
// Seam records are computed from pre-commit canvas colors, so step 1 runs
// before step 2. A zero-area placement is a no-op.
//
// Complexity: O(h·w).
func Commit(c *canvas.Canvas, g *seam.Graph, sourceSide []bool, opts seam.Options) (Stats, error) {
	pl := g.Placement
	st := Stats{Nodes: g.NodeCount(), SeamNodes: len(g.Seams), Edges: len(g.Edges)}
	if pl.Empty() {
		return st, nil
	}
	if len(sourceSide) < len(g.Pixels) {
		return st, fmt.Errorf("%w: %d labels for %d pixel nodes", ErrPartition, len(sourceSide), len(g.Pixels))
	}
	patch := pl.Patch

	// 1) Seam memory
	for id, px := range g.Pixels {
		y, x := px.Y, px.X
		for _, o := range canvas.Forward {
			dy, dx := o.Step()
			qid, ok := g.Node(y+dy, x+dx)
			if !ok {
				continue
			}
			pNew, qNew := sourceSide[id], sourceSide[qid]
			switch {
			case pNew && qNew:
				if c.Seam(o, y, x).Active() {
					c.ClearSeam(o, y, x)
					st.Cleared++
				}
			case pNew != qNew:
				old := canvas.Pair{c.At(y, x), c.At(y+dy, x+dx)}
				nw := canvas.Pair{patch.At(y-pl.Top, x-pl.Left), patch.At(y+dy-pl.Top, x+dx-pl.Left)}
				rec := canvas.SeamRecord{Weight: seam.Weight(old[0], old[1], nw[0], nw[1], opts)}
				if pNew {
					rec.A, rec.B = nw, old
				} else {
					rec.A, rec.B = old, nw
				}
				c.SetSeam(o, y, x, rec)
				st.Written++
			}
		}
	}

	// 2–3) Pixels and mask
	for y := pl.Top; y < pl.Top+pl.Height(); y++ {
		for x := pl.Left; x < pl.Left+pl.Width(); x++ {
			id, wasFilled := g.Node(y, x)
			switch {
			case !wasFilled:
				st.Added++
			case sourceSide[id]:
				st.Replaced++
			default:
				continue
			}
			c.Commit(y, x, patch.At(y-pl.Top, x-pl.Left))
		}
	}
	return st, nil
}

// Place builds the seam graph for pl, solves it with solver, and commits
// the result. On any error the canvas is unchanged.
func Place(ctx context.Context, c *canvas.Canvas, pl canvas.Placement, solver flow.Solver, opts seam.Options) (Stats, error) {
	g, err := seam.Build(c, pl, opts)
	if err != nil {
		return Stats{}, err
	}
	var side []bool
	if g.NodeCount() > 0 {
		side, err = solver.MinCut(ctx, g.NodeCount(), g.Edges, g.Terminals)
		if err != nil {
			return Stats{}, fmt.Errorf("%w: %w", ErrSolve, err)
		}
	}
	return Commit(c, g, side, opts)
}
