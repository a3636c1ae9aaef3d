package cost

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quilt/canvas"
)

// Inf is the sentinel cost of an offset without overlap.
const Inf = 1.0e8

// countEpsilon guards the fast-path division.
const countEpsilon = 1e-8

var (
	// ErrPatchTooLarge is returned when no offset keeps the patch on the canvas.
	ErrPatchTooLarge = errors.New("cost: patch larger than canvas")
	// ErrRowRange is returned by FastRows for an empty or out-of-range band.
	ErrRowRange = errors.New("cost: offset rows out of range")
)

// Table holds Fast results for a band of offset rows [Top, Top+Rows) and
// every valid column. Cost.At(i, c) and Count.At(i, c) describe the
// placement at top Top+i, left c.
type Table struct {
	Top        int
	Rows, Cols int
	Cost       *mat.Dense
	Count      *mat.Dense
}

// At returns the cost and overlap count at offset (r, c), where r is a
// canvas row in [Top, Top+Rows).
func (t *Table) At(r, c int) (cost float64, count int) {
	return t.Cost.At(r-t.Top, c), int(t.Count.At(r-t.Top, c))
}

// Offsets returns the number of valid offsets for a patch of size s on c,
// or ErrPatchTooLarge when there are none.
func Offsets(c *canvas.Canvas, s canvas.Size) (rows, cols int, err error) {
	rows, cols = c.Height-s.Height+1, c.Width-s.Width+1
	if s.Height <= 0 || s.Width <= 0 || rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: patch %dx%d, canvas %dx%d",
			ErrPatchTooLarge, s.Height, s.Width, c.Height, c.Width)
	}
	return rows, cols, nil
}

// Exact computes the cost of placing p at (top, left).
// The footprint is clipped to the canvas. Returns (Inf, 0) when no filled
// pixel lies under the footprint.
//
// Complexity: O(h·w).
func Exact(c *canvas.Canvas, p *canvas.Patch, top, left int) (float64, int) {
	var sum float64
	count := 0
	for y := 0; y < p.Height; y++ {
		cy := top + y
		for x := 0; x < p.Width; x++ {
			cx := left + x
			if !c.Filled(cy, cx) {
				continue
			}
			count++
			old, nw := c.At(cy, cx), p.At(y, x)
			for ch := 0; ch < 3; ch++ {
				d := old[ch] - nw[ch]
				sum += d * d
			}
		}
	}
	if count == 0 {
		return Inf, 0
	}
	return sum / float64(count), count
}
