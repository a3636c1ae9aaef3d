// Package cost scores how well a candidate patch matches the filled part of
// a canvas at a given offset.
//
// The cost of placing patch P with its top-left corner at (r, c) is the
// mean, over filled canvas pixels under the footprint, of the squared
// per-channel color difference:
//
//	cost(r,c) = Σ M·‖C − P‖² / count,   count = Σ M
//
// where M is the filled mask and C the canvas. Offsets whose footprint covers
// no filled pixel get the sentinel Inf and a zero count.
//
// Two evaluators are provided. Exact computes one offset directly in
// O(h·w). Fast (and FastRows, for a band of offset rows) computes every
// offset at once from summed-area tables of the windowed canvas energy and
// fill count, plus 2-D correlations of the mask against the squared patch
// and of the masked canvas against the patch:
//
//	cost = (term1 + term2 − 2·term3) / max(count, ε)
//
// Large correlations run in the frequency domain (gonum dsp/fourier); small
// ones use the direct sum. Both evaluators agree to floating tolerance
// wherever count > 0.
//
// Tables are gonum *mat.Dense with Cols = W−w+1 and one row per offset row
// in the requested band (Rows = H−h+1 for Fast).
//
// Errors:
//
//   - ErrPatchTooLarge: the patch exceeds the canvas in either dimension,
//     so no offset is valid.
//   - ErrRowRange: FastRows was given an empty or out-of-range band.
package cost
