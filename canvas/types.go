package canvas

import (
	"errors"
)

// Sentinel errors for canvas operations.
var (
	// ErrEmptyCanvas indicates a canvas with no rows or no columns.
	ErrEmptyCanvas = errors.New("canvas: height and width must be positive")
	// ErrEmptyPatch indicates a patch with no rows or no columns, or a pixel
	// slice that does not match its dimensions.
	ErrEmptyPatch = errors.New("canvas: patch dimensions must be positive and match its pixels")
	// ErrBadCrop indicates a crop window that does not lie inside the patch.
	ErrBadCrop = errors.New("canvas: crop window out of range")
	// ErrSeedTooLarge indicates a seed pattern that does not fit the canvas.
	ErrSeedTooLarge = errors.New("canvas: seed pattern larger than canvas")
	// ErrDanglingSeam indicates a seam record between pixels that are not both filled.
	ErrDanglingSeam = errors.New("canvas: seam record on unfilled pixel pair")
)

// Color is a 3-channel pixel value.
type Color [3]float64

// Pair holds the colors one source assigns to the two pixels of a seam.
type Pair [2]Color

// SeamRecord is one cell of seam memory.
//
// A holds the colors that the source owning the first pixel of the pair
// (top or left) gives to both pixels; B holds those of the source owning the
// second pixel. Weight is the cost of the recorded cut; zero means no seam.
type SeamRecord struct {
	Weight float64
	A, B   Pair
}

// Active reports whether the record describes a live seam.
func (r SeamRecord) Active() bool { return r.Weight > 0 }

// Orientation selects a seam memory.
type Orientation int

const (
	// Vertical pairs link (y,x) with (y+1,x).
	Vertical Orientation = iota
	// Horizontal pairs link (y,x) with (y,x+1).
	Horizontal
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Step returns the (dy, dx) offset from the first pixel of a pair to the second.
func (o Orientation) Step() (dy, dx int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

// Forward lists the orientations in the order pairs are visited: down, then right.
var Forward = [2]Orientation{Vertical, Horizontal}

// Size is a height/width pair. The zero Size means "use the whole pattern".
type Size struct {
	Height, Width int
}

// IsZero reports whether s is the zero Size.
func (s Size) IsZero() bool { return s.Height == 0 && s.Width == 0 }

// Area returns Height*Width.
func (s Size) Area() int { return s.Height * s.Width }
