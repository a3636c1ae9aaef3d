package locate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/quilt/canvas"
	"github.com/katalvlaran/quilt/cost"
)

// Mode selects the placement rule.
type Mode int

const (
	// Random picks a uniform valid offset.
	Random Mode = iota
	// Optimal samples offsets by overlap cost.
	Optimal
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Random:
		return "random"
	case Optimal:
		return "optimal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Any leaves Request.Row or Request.Col unrestricted.
const Any = -1

var (
	// ErrPatchTooLarge aliases cost.ErrPatchTooLarge.
	ErrPatchTooLarge = cost.ErrPatchTooLarge
	// ErrRestriction indicates a Row or Col outside the valid offsets.
	ErrRestriction = errors.New("locate: restriction outside valid offsets")
	// ErrUnknownMode indicates an unsupported Mode.
	ErrUnknownMode = errors.New("locate: unknown mode")
	// ErrTemperature indicates a negative or NaN temperature.
	ErrTemperature = errors.New("locate: invalid temperature")
)

// Request describes one placement query.
type Request struct {
	Mode        Mode
	Temperature float64     // k; larger values favor low cost more strongly
	Row, Col    int         // offset restriction, or Any
	Sub         canvas.Size // random crop of the pattern; zero keeps it whole
}

// DefaultRequest returns an unrestricted Optimal request with k = 1.
func DefaultRequest() Request {
	return Request{Mode: Optimal, Temperature: 1, Row: Any, Col: Any}
}

// Locator answers placement queries using its random source.
type Locator struct {
	rng canvas.Source
}

// New returns a Locator drawing from rng. A nil rng uses the default seed.
func New(rng canvas.Source) *Locator {
	if rng == nil {
		rng = canvas.NewSource(0)
	}
	return &Locator{rng: rng}
}

// Bounds returns the accepted overlap range for a patch of the given area
// on a canvas with free unfilled pixels.
func Bounds(area, free int) (lo, hi int) {
	lo = area / 10
	hi = area * 7 / 10
	if forced := area - free; forced > hi {
		hi = forced
	}
	return lo, hi
}

// Locate returns the placement for pattern on c according to req.
//
// Steps:
//  1. Crop pattern to req.Sub.
//  2. Check the patch fits and the restriction names valid offsets.
//  3. Pick an offset by req.Mode.
func (l *Locator) Locate(c *canvas.Canvas, pattern *canvas.Patch, req Request) (canvas.Placement, error) {
	if req.Mode != Random && req.Mode != Optimal {
		return canvas.Placement{}, fmt.Errorf("%w: %v", ErrUnknownMode, req.Mode)
	}
	if req.Temperature < 0 || math.IsNaN(req.Temperature) {
		return canvas.Placement{}, fmt.Errorf("%w: %v", ErrTemperature, req.Temperature)
	}

	// 1) Crop
	patch, err := pattern.RandomCrop(l.rng, req.Sub)
	if err != nil {
		return canvas.Placement{}, err
	}

	// 2) Offsets
	rows, cols, err := cost.Offsets(c, patch.Size())
	if err != nil {
		return canvas.Placement{}, err
	}
	rowLo, rowHi, err := span(req.Row, rows, "row")
	if err != nil {
		return canvas.Placement{}, err
	}
	colLo, colHi, err := span(req.Col, cols, "col")
	if err != nil {
		return canvas.Placement{}, err
	}

	// 3) Choose
	pl := canvas.Placement{Patch: patch}
	if req.Mode == Random {
		pl.Top = rowLo + l.rng.Intn(rowHi-rowLo)
		pl.Left = colLo + l.rng.Intn(colHi-colLo)
		return pl, nil
	}

	// Only the restricted rows are scored.
	table, err := cost.FastRows(c, patch, rowLo, rowHi)
	if err != nil {
		return canvas.Placement{}, err
	}
	pl.Top, pl.Left = l.sample(table, patch, c.Free(), req.Temperature, rowLo, rowHi, colLo, colHi)
	return pl, nil
}

// span resolves a restriction into the half-open offset range [lo, hi).
func span(restrict, n int, name string) (lo, hi int, err error) {
	if restrict == Any {
		return 0, n, nil
	}
	if restrict < 0 || restrict >= n {
		return 0, 0, fmt.Errorf("%w: %s %d not in [0,%d)", ErrRestriction, name, restrict, n)
	}
	return restrict, restrict + 1, nil
}

type candidate struct {
	top, left int
	cost      float64
	count     int
}

// sample draws one offset from the survivors of the overlap filter.
func (l *Locator) sample(t *cost.Table, patch *canvas.Patch, free int, k float64, rowLo, rowHi, colLo, colHi int) (top, left int) {
	lo, hi := Bounds(patch.Area(), free)

	var (
		survivors []candidate
		fallback  = candidate{count: math.MaxInt}
		minCost   = math.Inf(1)
	)
	for r := rowLo; r < rowHi; r++ {
		for cc := colLo; cc < colHi; cc++ {
			v, n := t.At(r, cc)
			if n < fallback.count {
				fallback = candidate{top: r, left: cc, cost: v, count: n}
			}
			if n < lo || n > hi {
				continue
			}
			survivors = append(survivors, candidate{top: r, left: cc, cost: v, count: n})
			if v < minCost {
				minCost = v
			}
		}
	}
	if len(survivors) == 0 {
		return fallback.top, fallback.left
	}

	variance := colorVariance(patch)
	weights := make([]float64, len(survivors))
	for i, s := range survivors {
		switch {
		case s.cost == minCost:
			weights[i] = 1
		case variance == 0:
			weights[i] = 0
		default:
			weights[i] = math.Exp(-(s.cost - minCost) * k / variance)
		}
	}

	cdf := make([]float64, len(weights))
	floats.CumSum(cdf, weights)
	u := l.rng.Float64() * cdf[len(cdf)-1]
	i := sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
	if i == len(cdf) {
		i--
	}
	return survivors[i].top, survivors[i].left
}

// colorVariance sums the per-channel population variances of p.
func colorVariance(p *canvas.Patch) float64 {
	vals := make([]float64, len(p.Pix))
	var total float64
	for ch := 0; ch < 3; ch++ {
		for i, col := range p.Pix {
			vals[i] = col[ch]
		}
		total += stat.PopVariance(vals, nil)
	}
	return total
}
