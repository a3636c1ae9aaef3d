package canvas

import "fmt"

// Canvas is the synthesis target: pixels, filled mask, and seam memory.
// It is not safe for concurrent mutation.
type Canvas struct {
	Width, Height int

	pix    []Color
	filled []bool
	nFill  int

	// vertical[y*Width+x] links (y,x)-(y+1,x); (Height-1)×Width cells.
	vertical []SeamRecord
	// horizontal[y*(Width-1)+x] links (y,x)-(y,x+1); Height×(Width-1) cells.
	horizontal []SeamRecord
}

// New allocates a zero-filled Height×Width canvas with empty seam memory.
// Returns ErrEmptyCanvas if either dimension is non-positive.
// Complexity: O(W×H) time and memory.
func New(height, width int) (*Canvas, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrEmptyCanvas
	}
	return &Canvas{
		Width:      width,
		Height:     height,
		pix:        make([]Color, height*width),
		filled:     make([]bool, height*width),
		vertical:   make([]SeamRecord, (height-1)*width),
		horizontal: make([]SeamRecord, height*(width-1)),
	}, nil
}

// Seed crops pattern to a random window of size s (zero s = whole pattern),
// copies it to the top-left corner, and marks it filled.
// Returns ErrBadCrop for an oversized crop and ErrSeedTooLarge when the
// result does not fit the canvas.
func (c *Canvas) Seed(pattern *Patch, s Size, rng Source) error {
	p, err := pattern.RandomCrop(rng, s)
	if err != nil {
		return err
	}
	if p.Height > c.Height || p.Width > c.Width {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSeedTooLarge, p.Height, p.Width, c.Height, c.Width)
	}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c.Commit(y, x, p.At(y, x))
		}
	}
	return nil
}

// InBounds reports whether (y, x) lies on the canvas.
// Complexity: O(1).
func (c *Canvas) InBounds(y, x int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Index maps (y, x) to a row-major index: y*Width + x.
func (c *Canvas) Index(y, x int) int { return y*c.Width + x }

// Coordinate converts a row-major index back to (y, x).
func (c *Canvas) Coordinate(idx int) (y, x int) { return idx / c.Width, idx % c.Width }

// Area returns Width*Height.
func (c *Canvas) Area() int { return c.Width * c.Height }

// At returns the committed color at (y, x); zero for unfilled pixels.
func (c *Canvas) At(y, x int) Color { return c.pix[c.Index(y, x)] }

// Filled reports whether (y, x) holds a committed color.
// Out-of-bounds coordinates report false.
func (c *Canvas) Filled(y, x int) bool {
	return c.InBounds(y, x) && c.filled[c.Index(y, x)]
}

// FilledCount returns the number of filled pixels.
func (c *Canvas) FilledCount() int { return c.nFill }

// Free returns the number of unfilled pixels.
func (c *Canvas) Free() int { return c.Area() - c.nFill }

// Full reports whether every pixel is filled.
func (c *Canvas) Full() bool { return c.nFill == c.Area() }

// Commit stores col at (y, x) and marks the pixel filled.
func (c *Canvas) Commit(y, x int, col Color) {
	i := c.Index(y, x)
	c.pix[i] = col
	c.markIndex(i)
}

// MarkFilled marks (y, x) filled without changing its color.
func (c *Canvas) MarkFilled(y, x int) { c.markIndex(c.Index(y, x)) }

func (c *Canvas) markIndex(i int) {
	if !c.filled[i] {
		c.filled[i] = true
		c.nFill++
	}
}

// FilledMask returns a copy of the filled mask, row-major.
func (c *Canvas) FilledMask() []bool {
	out := make([]bool, len(c.filled))
	copy(out, c.filled)
	return out
}

// Patch returns a snapshot of the pixel buffer as a Patch.
func (c *Canvas) Patch() *Patch {
	pix := make([]Color, len(c.pix))
	copy(pix, c.pix)
	return &Patch{Height: c.Height, Width: c.Width, Pix: pix}
}

// Clone returns a deep copy of the canvas including seam memory.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{
		Width:      c.Width,
		Height:     c.Height,
		pix:        append([]Color(nil), c.pix...),
		filled:     append([]bool(nil), c.filled...),
		nFill:      c.nFill,
		vertical:   append([]SeamRecord(nil), c.vertical...),
		horizontal: append([]SeamRecord(nil), c.horizontal...),
	}
	return out
}
