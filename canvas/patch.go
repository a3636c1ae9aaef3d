package canvas

import "fmt"

// Patch is a rectangular Color buffer stored row-major.
type Patch struct {
	Height, Width int
	Pix           []Color
}

// NewPatch allocates a zero-filled Height×Width patch.
// Returns ErrEmptyPatch for non-positive dimensions.
func NewPatch(height, width int) (*Patch, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrEmptyPatch
	}
	return &Patch{Height: height, Width: width, Pix: make([]Color, height*width)}, nil
}

// PatchFromPixels wraps pix (row-major) as a Height×Width patch.
// The slice is copied. Returns ErrEmptyPatch if the sizes disagree.
func PatchFromPixels(height, width int, pix []Color) (*Patch, error) {
	if height <= 0 || width <= 0 || len(pix) != height*width {
		return nil, ErrEmptyPatch
	}
	out := make([]Color, len(pix))
	copy(out, pix)
	return &Patch{Height: height, Width: width, Pix: out}, nil
}

// Solid returns a Height×Width patch filled with c.
func Solid(height, width int, c Color) (*Patch, error) {
	p, err := NewPatch(height, width)
	if err != nil {
		return nil, err
	}
	for i := range p.Pix {
		p.Pix[i] = c
	}
	return p, nil
}

// Size returns the patch dimensions.
func (p *Patch) Size() Size { return Size{Height: p.Height, Width: p.Width} }

// Area returns the number of pixels.
func (p *Patch) Area() int { return p.Height * p.Width }

// At returns the color at (y, x). Coordinates are not checked.
func (p *Patch) At(y, x int) Color { return p.Pix[y*p.Width+x] }

// Set stores c at (y, x). Coordinates are not checked.
func (p *Patch) Set(y, x int, c Color) { p.Pix[y*p.Width+x] = c }

// Clone returns a deep copy of p.
func (p *Patch) Clone() *Patch {
	pix := make([]Color, len(p.Pix))
	copy(pix, p.Pix)
	return &Patch{Height: p.Height, Width: p.Width, Pix: pix}
}

// Crop copies the window of size s whose top-left corner is (top, left).
// Returns ErrBadCrop when the window leaves the patch.
func (p *Patch) Crop(top, left int, s Size) (*Patch, error) {
	if s.Height <= 0 || s.Width <= 0 || top < 0 || left < 0 ||
		top+s.Height > p.Height || left+s.Width > p.Width {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d",
			ErrBadCrop, s.Height, s.Width, top, left, p.Height, p.Width)
	}
	out := &Patch{Height: s.Height, Width: s.Width, Pix: make([]Color, s.Area())}
	for y := 0; y < s.Height; y++ {
		src := p.Pix[(top+y)*p.Width+left : (top+y)*p.Width+left+s.Width]
		copy(out.Pix[y*s.Width:(y+1)*s.Width], src)
	}
	return out, nil
}

// RandomCrop copies a window of size s at a uniformly random position.
// A zero s returns a copy of the whole patch without consuming randomness.
//
// Complexity: O(s.Area()).
func (p *Patch) RandomCrop(rng Source, s Size) (*Patch, error) {
	if s.IsZero() {
		return p.Clone(), nil
	}
	if s.Height <= 0 || s.Width <= 0 || s.Height > p.Height || s.Width > p.Width {
		return nil, fmt.Errorf("%w: %dx%d from %dx%d", ErrBadCrop, s.Height, s.Width, p.Height, p.Width)
	}
	top := rng.Intn(p.Height - s.Height + 1)
	left := rng.Intn(p.Width - s.Width + 1)
	return p.Crop(top, left, s)
}

// Placement puts Patch with its top-left corner at (Top, Left).
type Placement struct {
	Top, Left int
	Patch     *Patch
}

// Height returns the footprint height; zero for a nil patch.
func (pl Placement) Height() int {
	if pl.Patch == nil {
		return 0
	}
	return pl.Patch.Height
}

// Width returns the footprint width; zero for a nil patch.
func (pl Placement) Width() int {
	if pl.Patch == nil {
		return 0
	}
	return pl.Patch.Width
}

// Empty reports whether the footprint covers no pixel.
func (pl Placement) Empty() bool { return pl.Height() == 0 || pl.Width() == 0 }

// Contains reports whether canvas pixel (y, x) lies inside the footprint.
func (pl Placement) Contains(y, x int) bool {
	return y >= pl.Top && y < pl.Top+pl.Height() && x >= pl.Left && x < pl.Left+pl.Width()
}

// Fits reports whether the footprint lies entirely on c.
func (pl Placement) Fits(c *Canvas) bool {
	return pl.Top >= 0 && pl.Left >= 0 &&
		pl.Top+pl.Height() <= c.Height && pl.Left+pl.Width() <= c.Width
}

// Overlap returns the number of filled canvas pixels under the footprint.
func (pl Placement) Overlap(c *Canvas) int {
	n := 0
	for y := pl.Top; y < pl.Top+pl.Height(); y++ {
		for x := pl.Left; x < pl.Left+pl.Width(); x++ {
			if c.Filled(y, x) {
				n++
			}
		}
	}
	return n
}
