// Package locate chooses where the next patch goes.
//
// What:
//
//	Random:  a uniform valid offset, optionally restricted to one row or
//	         column of offsets.
//	Optimal: a sample from the overlap-cost distribution
//
//	    p(r, c) ∝ exp(−cost(r, c)·k / σ²(patch))
//
//	where cost is the mean squared difference over the overlap (package
//	cost), k the temperature, and σ² the sum of per-channel population
//	variances of the patch. Offsets whose overlap count falls outside
//	[⌊0.1·A⌋, max(⌊0.7·A⌋, A − free)] are not sampled; when none remain the
//	first offset with the smallest overlap is taken.
//
// Sub-block requests crop the pattern to a random window first.
//
// Complexity:
//
//	Random:  O(h·w) for the crop.
//	Optimal: that of cost.FastRows over the allowed rows plus O(Rows·Cols).
//
// Errors:
//
//	ErrPatchTooLarge, ErrRestriction, ErrUnknownMode, ErrTemperature.
package locate
