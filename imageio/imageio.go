// Package imageio converts between image.Image and canvas patches and reads
// or writes PNG, JPEG and BMP files.
//
// Colors are stored as 8-bit channel values in float64, so a pattern that
// round-trips through FromImage and ToImage is unchanged.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/bmp"

	"github.com/katalvlaran/quilt/canvas"
)

// ErrFormat indicates an unsupported image format.
var ErrFormat = errors.New("imageio: unsupported format")

// DefaultJPEGQuality is used by Save when quality is not in [1, 100].
const DefaultJPEGQuality = 90

// FromImage copies img into a patch. Fully transparent pixels become black.
func FromImage(img image.Image) (*canvas.Patch, error) {
	b := img.Bounds()
	p, err := canvas.NewPatch(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			col, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			r, g, bl := col.RGB255()
			p.Set(y, x, canvas.Color{float64(r), float64(g), float64(bl)})
		}
	}
	return p, nil
}

// ToImage renders p as an opaque RGBA image. Channels are clamped to [0, 255].
func ToImage(p *canvas.Patch) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := p.At(y, x)
			r, g, b := colorful.Color{R: c[0] / 255, G: c[1] / 255, B: c[2] / 255}.Clamped().RGB255()
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 0xff
		}
	}
	return img
}

// FormatFromPath maps a file extension to "png", "jpeg" or "bmp".
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// Decode reads an image in the given format; "" sniffs the header.
func Decode(r io.Reader, format string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(format) {
	case "":
		img, _, err = image.Decode(r)
	case "png":
		img, err = png.Decode(r)
	case "jpeg", "jpg":
		img, err = jpeg.Decode(r)
	case "bmp":
		img, err = bmp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return img, nil
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(w, img)
	case "jpeg", "jpg":
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode: %w", err)
	}
	return nil
}

// Load decodes the file at path into a patch.
func Load(path string) (*canvas.Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, "")
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// Save encodes p to path, choosing the format by extension.
func Save(path string, p *canvas.Patch, quality int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create: %w", err)
	}
	if err = Encode(f, ToImage(p), format, quality); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
