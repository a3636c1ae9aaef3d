// Package quilt grows a texture from a small pattern by repeated graph-cut
// placements.
//
// What:
//
//	Synthesizer.Run seeds an H×W canvas with (a crop of) the pattern, then
//	loops locate → seam.Build → flow.Solver → blend.Commit until every pixel
//	is filled. Each accepted placement adds at least one pixel.
//
// Strategies:
//
//	SubBlockRandom  whole-canvas search for random sub-blocks (k = 1).
//	SubBlockRow     row bands filled with sub-blocks (k = 100, default).
//	GlobalRow       row bands filled with the whole pattern (k = 10).
//
// The sub-block size is (h / hRatio, w / factor), where factor is the patch
// factor and hRatio is 1 for Horizontal generation and factor for
// Bidirectional.
//
// Band loop (row strategies), with band = patch height:
//
//	row = 0
//	while not full:
//	    while filled < (row + band)·W: place with top = row
//	    if H − band − row < band/2: row = H − band
//	    else: place anywhere; row = its top
//
// A row placement that cannot add a pixel is replaced by a whole-canvas
// search for that iteration.
//
// Options:
//
//	WithSize, WithDirection, WithPatchFactor, WithStrategy, WithTemperature,
//	WithSeed/WithRand, WithSolver, WithNorm, WithGradientEnergy,
//	WithOldSeams, WithUniformPlacement, WithMaxIterations, WithLogger,
//	WithProgress.
//
// Errors:
//
//	ErrStrategy, ErrDirection, ErrConfig from New or Run;
//	ErrIterationLimit when WithMaxIterations is exceeded;
//	ErrNoProgress if a whole-canvas placement would add no pixel;
//	blend.ErrSolve and context errors from Run.
//
// Concurrency:
//
//	A Synthesizer runs one pattern at a time. Concurrent runs need separate
//	Synthesizers with separate random sources.
package quilt
