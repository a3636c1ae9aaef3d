// SPDX-License-Identifier: MIT
// Package: quilt/seam
//
// Package seam turns one patch placement into a min-cut problem.
//
// Nodes are the filled canvas pixels inside the placement footprint
// (numbered row-major), followed by one auxiliary node per reopened old
// seam. For each pixel node and each forward neighbor (down, right) that is
// also a filled footprint pixel:
//
//   - without a recorded seam, a direct edge weighted by Weight(canvas pair,
//     patch pair);
//   - with a recorded seam, an auxiliary node tied to the new side with the
//     stored seam weight, and one edge from each pixel to it weighted against
//     the colors that pixel's owning source gave the pair.
//
// Terminals pin pixels to a side (capacity +Inf) and are evaluated
// independently:
//
//   - new side: the pixel has an unfilled neighbor inside the footprint;
//   - old side: the pixel sits on the footprint border and the pixel across
//     that border is filled.
//
// A pixel can satisfy both; it then carries both terminals and the solver
// leaves it free (see package flow).
//
// Source side = new patch, sink side = old canvas.
package seam
