package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quilt/canvas"
)

func TestPatchFromPixels(t *testing.T) {
	_, err := canvas.PatchFromPixels(2, 2, make([]canvas.Color, 3))
	require.ErrorIs(t, err, canvas.ErrEmptyPatch)

	pix := []canvas.Color{{1}, {2}, {3}, {4}}
	p, err := canvas.PatchFromPixels(2, 2, pix)
	require.NoError(t, err)
	pix[0] = canvas.Color{99}
	assert.Equal(t, canvas.Color{1}, p.At(0, 0), "input slice must be copied")
	assert.Equal(t, canvas.Color{4}, p.At(1, 1))
}

func TestCrop(t *testing.T) {
	p := gradientPatch(t, 4, 5)

	sub, err := p.Crop(1, 2, canvas.Size{Height: 2, Width: 3})
	require.NoError(t, err)
	require.Equal(t, canvas.Size{Height: 2, Width: 3}, sub.Size())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, p.At(1+y, 2+x), sub.At(y, x))
		}
	}

	bad := []struct {
		name      string
		top, left int
		s         canvas.Size
	}{
		{"Overflow", 3, 0, canvas.Size{Height: 2, Width: 1}},
		{"Negative", -1, 0, canvas.Size{Height: 1, Width: 1}},
		{"Empty", 0, 0, canvas.Size{}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Crop(tc.top, tc.left, tc.s)
			require.ErrorIs(t, err, canvas.ErrBadCrop)
		})
	}
}

func TestRandomCrop_UsesSource(t *testing.T) {
	p := gradientPatch(t, 6, 6)
	sub, err := p.RandomCrop(&fixedSource{ints: []int{2, 3}}, canvas.Size{Height: 3, Width: 2})
	require.NoError(t, err)
	assert.Equal(t, p.At(2, 3), sub.At(0, 0))

	whole, err := p.RandomCrop(nil, canvas.Size{})
	require.NoError(t, err)
	assert.Equal(t, p.Pix, whole.Pix)

	_, err = p.RandomCrop(&fixedSource{}, canvas.Size{Height: 7, Width: 1})
	require.ErrorIs(t, err, canvas.ErrBadCrop)
}

func TestNewSource_Deterministic(t *testing.T) {
	a, b := canvas.NewSource(0), canvas.NewSource(1)
	for i := 0; i < 8; i++ {
		require.Equal(t, a.Int63(), b.Int63(), "seed 0 must alias the default seed")
	}
}
