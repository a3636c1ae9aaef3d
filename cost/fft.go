package cost

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// fftMinKernel is the smallest kernel area considered for the frequency
// domain; below it the direct sum always wins.
const fftMinKernel = 121

// fftOpCost weighs one complex butterfly against one direct multiply-add.
const fftOpCost = 2

// correlate adds Σ_k imgs[k] ⋆ kernels[k] into dst, where
//
//	(img ⋆ kernel)[r][c] = Σ_{i,j} img[r+i][c+j]·kernel[i][j]
//
// for every (r, c) of dst (anchor at the kernel's top-left). All images
// share one shape and all kernels share one shape.
//
// The direct sum costs O(Rows·Cols·h·w) per pair; the frequency-domain path
// costs O(H·W·log(H·W)) per pair and is used when it is estimated cheaper.
func correlate(dst *mat.Dense, imgs, kernels []*mat.Dense) {
	rows, cols := dst.Dims()
	kh, kw := kernels[0].Dims()
	ih, iw := imgs[0].Dims()
	if useFFT(rows, cols, kh, kw, ih, iw, len(imgs)) {
		correlateFFT(dst, imgs, kernels)
		return
	}
	for k := range imgs {
		correlateDirect(dst, imgs[k], kernels[k])
	}
}

// useFFT compares rough operation counts of the two correlation paths.
func useFFT(rows, cols, kh, kw, ih, iw, pairs int) bool {
	if kh*kw < fftMinKernel {
		return false
	}
	direct := float64(rows) * float64(cols) * float64(kh*kw) * float64(pairs)
	n := float64(fftSize(ih) * fftSize(iw))
	transforms := float64(2*pairs + 1)
	return direct > fftOpCost*transforms*n*math.Log2(n)
}

// correlateDirect adds img ⋆ kernel into dst by direct summation.
func correlateDirect(dst, img, kernel *mat.Dense) {
	rows, cols := dst.Dims()
	kh, kw := kernel.Dims()
	src := img.RawMatrix()
	ker := kernel.RawMatrix()
	out := dst.RawMatrix()
	for i := 0; i < kh; i++ {
		krow := ker.Data[i*ker.Stride : i*ker.Stride+kw]
		for j, k := range krow {
			if k == 0 {
				continue
			}
			for r := 0; r < rows; r++ {
				srow := src.Data[(r+i)*src.Stride+j : (r+i)*src.Stride+j+cols]
				drow := out.Data[r*out.Stride : r*out.Stride+cols]
				for c, v := range srow {
					drow[c] += v * k
				}
			}
		}
	}
}

// correlateFFT adds Σ_k imgs[k] ⋆ kernels[k] into dst through the
// correlation theorem: img ⋆ kernel = IDFT(DFT(img)·conj(DFT(kernel))).
//
// Both operands are zero-padded to the same N×M grid with N ≥ H and M ≥ W.
// The circular product only wraps for offsets past H−h or W−w, which lie
// outside dst. Products are summed in the frequency domain so the pairs
// share one inverse transform.
func correlateFFT(dst *mat.Dense, imgs, kernels []*mat.Dense) {
	ih, iw := imgs[0].Dims()
	pl := newPlan2D(fftSize(ih), fftSize(iw))

	acc := make([]complex128, pl.h*pl.w)
	for k := range imgs {
		a := pl.forward(imgs[k])
		b := pl.forward(kernels[k])
		for i := range acc {
			acc[i] += a[i] * cmplx.Conj(b[i])
		}
	}
	pl.transform(acc, true)

	rows, cols := dst.Dims()
	out := dst.RawMatrix()
	scale := 1 / float64(pl.h*pl.w)
	for r := 0; r < rows; r++ {
		drow := out.Data[r*out.Stride : r*out.Stride+cols]
		for c := range drow {
			drow[c] += real(acc[r*pl.w+c]) * scale
		}
	}
}

// plan2D is a separable 2-D DFT over an h×w row-major grid.
type plan2D struct {
	h, w    int
	rowFFT  *fourier.CmplxFFT
	colFFT  *fourier.CmplxFFT
	in, out []complex128
}

func newPlan2D(h, w int) *plan2D {
	n := max(h, w)
	return &plan2D{
		h:      h,
		w:      w,
		rowFFT: fourier.NewCmplxFFT(w),
		colFFT: fourier.NewCmplxFFT(h),
		in:     make([]complex128, n),
		out:    make([]complex128, n),
	}
}

// forward returns the DFT of m zero-padded to the plan's grid.
func (p *plan2D) forward(m *mat.Dense) []complex128 {
	data := make([]complex128, p.h*p.w)
	raw := m.RawMatrix()
	for y := 0; y < raw.Rows; y++ {
		for x, v := range raw.Data[y*raw.Stride : y*raw.Stride+raw.Cols] {
			data[y*p.w+x] = complex(v, 0)
		}
	}
	p.transform(data, false)
	return data
}

// transform applies the forward (or unnormalized inverse) DFT in place:
// every row first, then every column.
func (p *plan2D) transform(data []complex128, inverse bool) {
	for y := 0; y < p.h; y++ {
		row := data[y*p.w : (y+1)*p.w]
		copy(p.in[:p.w], row)
		step(p.rowFFT, row, p.in[:p.w], inverse)
	}
	for x := 0; x < p.w; x++ {
		for y := 0; y < p.h; y++ {
			p.in[y] = data[y*p.w+x]
		}
		step(p.colFFT, p.out[:p.h], p.in[:p.h], inverse)
		for y := 0; y < p.h; y++ {
			data[y*p.w+x] = p.out[y]
		}
	}
}

func step(t *fourier.CmplxFFT, dst, src []complex128, inverse bool) {
	if inverse {
		t.Sequence(dst, src)
	} else {
		t.Coefficients(dst, src)
	}
}

// fftSize returns the smallest n' ≥ n whose only prime factors are 2, 3
// and 5, so no transform length degrades to a large prime.
func fftSize(n int) int {
	for m := max(n, 1); ; m++ {
		k := m
		for _, f := range []int{2, 3, 5} {
			for k%f == 0 {
				k /= f
			}
		}
		if k == 1 {
			return m
		}
	}
}
