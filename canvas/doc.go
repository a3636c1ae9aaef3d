// Package canvas holds the state of a quilting run: the output pixel
// buffer, the filled mask, and the seam memory for horizontal and vertical
// pixel pairs.
//
// What:
//
//   - Canvas is an H×W grid of 3-channel Colors plus a filled mask.
//     Filled[y,x] implies the color at (y,x) has been committed.
//   - Two seam memories record, per adjacent filled pair, the cost of the
//     cut that separates them and the colors each side contributed.
//   - Patch is a plain rectangular Color buffer; Crop and RandomCrop cut
//     sub-blocks out of it.
//
// Why:
//
//   - Successive placements need to know which pixels are already settled
//     (graph terminals) and where earlier cuts run (old-seam nodes).
//
// Layout:
//
//   - Pixels are stored row-major: Index(y, x) = y*Width + x.
//   - Vertical seams link (y,x)-(y+1,x) and form an (H−1)×W grid.
//   - Horizontal seams link (y,x)-(y,x+1) and form an H×(W−1) grid.
//
// Randomness never comes from process-wide state; callers pass a Source
// (a *math/rand.Rand satisfies it).
//
// Errors:
//
//   - ErrEmptyCanvas: non-positive canvas dimensions.
//   - ErrEmptyPatch: non-positive patch dimensions or short pixel slice.
//   - ErrBadCrop: crop window outside the patch.
//   - ErrSeedTooLarge: seed does not fit the canvas.
//   - ErrDanglingSeam: a seam record touches an unfilled pixel.
package canvas
