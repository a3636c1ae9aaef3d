// SPDX-License-Identifier: MIT
// Package: quilt/seam
//
// builder.go: per-placement min-cut graph construction.

package seam

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/flow"
)

// ErrOutOfBounds indicates a placement whose footprint leaves the canvas.
var ErrOutOfBounds = errors.New("seam: placement outside canvas")

// Pixel is a pixel node, in canvas coordinates.
type Pixel struct {
	Y, X int
}

// SeamNode is an auxiliary node standing for a reopened old seam between
// the pair starting at (Y, X) with the given orientation.
type SeamNode struct {
	Orientation canvas.Orientation
	Y, X        int
	Record      canvas.SeamRecord
}

// Graph is the min-cut instance for one placement.
// Node ids [0, len(Pixels)) are pixel nodes; the following len(Seams) ids
// are auxiliary seam nodes.
type Graph struct {
	Placement canvas.Placement
	Pixels    []Pixel
	Seams     []SeamNode
	Edges     []flow.Edge
	Terminals []flow.Terminal

	index []int // footprint-local row-major → node id, -1 when unfilled
}

// NodeCount returns the number of nodes handed to the solver.
func (g *Graph) NodeCount() int { return len(g.Pixels) + len(g.Seams) }

// SeamNodeID returns the node id of Seams[j].
func (g *Graph) SeamNodeID(j int) int { return len(g.Pixels) + j }

// Node returns the node id of canvas pixel (y, x), or false when the pixel
// is outside the footprint or was unfilled when the graph was built.
func (g *Graph) Node(y, x int) (int, bool) {
	pl := g.Placement
	if !pl.Contains(y, x) {
		return 0, false
	}
	id := g.index[(y-pl.Top)*pl.Width()+(x-pl.Left)]
	return id, id >= 0
}

// Pins reports whether node carries an infinite source (new) and/or sink
// (old) terminal.
func (g *Graph) Pins(node int) (toNew, toOld bool) {
	for _, t := range g.Terminals {
		if t.Node != node {
			continue
		}
		if math.IsInf(t.Source, 1) {
			toNew = true
		}
		if math.IsInf(t.Sink, 1) {
			toOld = true
		}
	}
	return toNew, toOld
}

// Build constructs the min-cut graph for placing pl on c.
//
// Steps:
//  1. Number the filled footprint pixels row-major.
//  2. For every pixel node and forward neighbor (down, right) that is a
//     filled footprint pixel, add either a direct edge or an old-seam node
//     with its two edges and its tie to the new side.
//  3. Add the pin-to-new and pin-to-old terminals, each rule evaluated on
//     its own.
//
// An empty placement yields an empty graph. Returns ErrOutOfBounds when the
// footprint leaves the canvas.
//
// Complexity:
//
//	Time:   O(h·w).
//	Memory: O(h·w).
func Build(c *canvas.Canvas, pl canvas.Placement, opts Options) (*Graph, error) {
	g := &Graph{Placement: pl}
	if pl.Empty() {
		return g, nil
	}
	if !pl.Fits(c) {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) on %dx%d",
			ErrOutOfBounds, pl.Height(), pl.Width(), pl.Top, pl.Left, c.Height, c.Width)
	}
	opts = opts.normalized()
	h, w := pl.Height(), pl.Width()
	top, left := pl.Top, pl.Left
	bottom, right := top+h, left+w
	patch := pl.Patch

	// 1) Pixel nodes
	g.index = make([]int, h*w)
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			li := (y-top)*w + (x - left)
			if !c.Filled(y, x) {
				g.index[li] = -1
				continue
			}
			g.index[li] = len(g.Pixels)
			g.Pixels = append(g.Pixels, Pixel{Y: y, X: x})
		}
	}

	inside := func(y, x int) bool { return y >= top && y < bottom && x >= left && x < right }
	inf := math.Inf(1)

	for id, px := range g.Pixels {
		y, x := px.Y, px.X

		// 2) Pair edges
		for _, o := range canvas.Forward {
			dy, dx := o.Step()
			qy, qx := y+dy, x+dx
			if !inside(qy, qx) || !c.Filled(qy, qx) {
				continue
			}
			qid := g.index[(qy-top)*w+(qx-left)]
			np, nq := patch.At(y-top, x-left), patch.At(qy-top, qx-left)

			rec := c.Seam(o, y, x)
			if opts.OldSeams && rec.Active() {
				sid := g.SeamNodeID(len(g.Seams))
				g.Seams = append(g.Seams, SeamNode{Orientation: o, Y: y, X: x, Record: rec})
				g.Terminals = append(g.Terminals, flow.Terminal{Node: sid, Source: rec.Weight})
				g.Edges = append(g.Edges,
					flow.Edge{U: id, V: sid, Cap: Weight(rec.A[0], rec.A[1], np, nq, opts)},
					flow.Edge{U: qid, V: sid, Cap: Weight(rec.B[0], rec.B[1], np, nq, opts)},
				)
				continue
			}
			g.Edges = append(g.Edges, flow.Edge{
				U: id, V: qid,
				Cap: Weight(c.At(y, x), c.At(qy, qx), np, nq, opts),
			})
		}

		// 3a) Pin to new: an unfilled neighbor inside the footprint.
		if (y > top && !c.Filled(y-1, x)) ||
			(y < bottom-1 && !c.Filled(y+1, x)) ||
			(x > left && !c.Filled(y, x-1)) ||
			(x < right-1 && !c.Filled(y, x+1)) {
			g.Terminals = append(g.Terminals, flow.Terminal{Node: id, Source: inf})
		}

		// 3b) Pin to old: settled content across the footprint border.
		if (y == top && c.Filled(y-1, x)) ||
			(y == bottom-1 && c.Filled(y+1, x)) ||
			(x == left && c.Filled(y, x-1)) ||
			(x == right-1 && c.Filled(y, x+1)) {
			g.Terminals = append(g.Terminals, flow.Terminal{Node: id, Sink: inf})
		}
	}
	return g, nil
}
