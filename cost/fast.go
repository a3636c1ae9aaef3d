package cost

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quilt/canvas"
)

// Fast computes the cost of every valid offset of p on c.
// It is FastRows over the whole row range.
func Fast(c *canvas.Canvas, p *canvas.Patch) (*Table, error) {
	rows, _, err := Offsets(c, p.Size())
	if err != nil {
		return nil, err
	}
	return FastRows(c, p, 0, rows)
}

// FastRows computes the cost of every offset of p on c whose top row lies
// in [top, bottom). Only canvas rows [top, bottom+h−1) are read.
//
// Steps:
//  1. Build the mask plane M, the masked canvas planes M·(C[ch]−μ[ch]), and
//     the masked energy plane Σ (M·(C[ch]−μ[ch]))², where μ is the patch
//     mean. The shift leaves every difference unchanged and keeps the
//     correlation terms small.
//  2. Summed-area tables of the energy plane and of M give term2 and the
//     overlap count for each window in O(1).
//  3. term1 = M ⋆ Σ P'[ch]² and term3 = Σ masked[ch] ⋆ P'[ch] (P' = P−μ) are 2-D
//     correlations restricted to the valid offsets (see correlate).
//  4. cost = (term1 + term2 − 2·term3) / max(count, ε); Inf where count==0.
//
// Returns ErrPatchTooLarge when the patch does not fit the canvas and
// ErrRowRange when [top, bottom) is empty or not inside the offset rows.
//
// Complexity, with B = bottom−top+h−1 band rows:
//
//	Time:   O(B·W·log(B·W)), or O(B·W + Rows·Cols·h·w) for small patches.
//	Memory: O(B·W).
func FastRows(c *canvas.Canvas, p *canvas.Patch, top, bottom int) (*Table, error) {
	rows, cols, err := Offsets(c, p.Size())
	if err != nil {
		return nil, err
	}
	if top < 0 || bottom > rows || top >= bottom {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrRowRange, top, bottom, rows)
	}
	rows = bottom - top
	band := rows + p.Height - 1

	// 1) Patch planes, shifted by the patch mean.
	var mean canvas.Color
	for _, col := range p.Pix {
		for ch := 0; ch < 3; ch++ {
			mean[ch] += col[ch]
		}
	}
	for ch := range mean {
		mean[ch] /= float64(len(p.Pix))
	}
	patchSq := mat.NewDense(p.Height, p.Width, nil)
	var patchCh [3]*mat.Dense
	for ch := range patchCh {
		patchCh[ch] = mat.NewDense(p.Height, p.Width, nil)
	}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			col := p.At(y, x)
			var e float64
			for ch := 0; ch < 3; ch++ {
				v := col[ch] - mean[ch]
				patchCh[ch].Set(y, x, v)
				e += v * v
			}
			patchSq.Set(y, x, e)
		}
	}

	// Canvas planes over the band.
	mask := mat.NewDense(band, c.Width, nil)
	energy := mat.NewDense(band, c.Width, nil)
	var masked [3]*mat.Dense
	for ch := range masked {
		masked[ch] = mat.NewDense(band, c.Width, nil)
	}
	for y := 0; y < band; y++ {
		for x := 0; x < c.Width; x++ {
			if !c.Filled(top+y, x) {
				continue
			}
			mask.Set(y, x, 1)
			col := c.At(top+y, x)
			var e float64
			for ch := 0; ch < 3; ch++ {
				v := col[ch] - mean[ch]
				masked[ch].Set(y, x, v)
				e += v * v
			}
			energy.Set(y, x, e)
		}
	}

	// 2) Summed-area tables.
	term2 := windowSums(summedArea(energy), rows, cols, p.Height, p.Width)
	count := windowSums(summedArea(mask), rows, cols, p.Height, p.Width)

	// 3) Correlations.
	term1 := mat.NewDense(rows, cols, nil)
	correlate(term1, []*mat.Dense{mask}, []*mat.Dense{patchSq})
	term3 := mat.NewDense(rows, cols, nil)
	correlate(term3, masked[:], patchCh[:])

	// 4) Combine.
	costs := mat.NewDense(rows, cols, nil)
	costs.Apply(func(r, cc int, _ float64) float64 {
		n := count.At(r, cc)
		if n == 0 {
			return Inf
		}
		num := term1.At(r, cc) + term2.At(r, cc) - 2*term3.At(r, cc)
		if num < 0 {
			// Rounding in the frequency domain.
			num = 0
		}
		if n < countEpsilon {
			n = countEpsilon
		}
		return num / n
	}, costs)

	return &Table{Top: top, Rows: rows, Cols: cols, Cost: costs, Count: count}, nil
}

// summedArea returns the (r+1)×(c+1) inclusive prefix-sum table of src:
// S[y][x] = Σ src[0..y-1][0..x-1].
func summedArea(src *mat.Dense) *mat.Dense {
	r, c := src.Dims()
	s := mat.NewDense(r+1, c+1, nil)
	for y := 1; y <= r; y++ {
		var run float64
		for x := 1; x <= c; x++ {
			run += src.At(y-1, x-1)
			s.Set(y, x, s.At(y-1, x)+run)
		}
	}
	return s
}

// windowSums evaluates the h×w window sum at every offset in rows×cols.
func windowSums(sat *mat.Dense, rows, cols, h, w int) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.Set(r, c, sat.At(r+h, c+w)-sat.At(r, c+w)-sat.At(r+h, c)+sat.At(r, c))
		}
	}
	return out
}
