// Package quilt is a graph-cut texture synthesis engine: it grows a large
// image from a small pattern by placing overlapping patches and stitching
// each one in along a minimum-cost seam.
//
// What is inside?
//
//	canvas    output buffer, filled mask, seam memory, patches, random source
//	cost      overlap cost of a placement, exact and via summed-area tables
//	locate    random and cost-sampled placement search
//	seam      pairwise seam weights and the per-placement cut graph
//	flow      max-flow / min-cut solvers (Dinic, Edmonds–Karp)
//	blend     applies a cut to the canvas and updates seam memory
//	quilt     strategies and the synthesis loop
//	imageio   image.Image conversion and PNG/JPEG/BMP files
//	cmd/quilt command-line front end
//
// One placement:
//
//	locate ──► seam.Build ──► flow.Solver.MinCut ──► blend.Commit
//
// Old seams cut by a new placement are modeled with auxiliary nodes so the
// cut can reopen them at their recorded cost.
//
// Quick start:
//
//	s, _ := quilt.New(quilt.WithSize(64, 256), quilt.WithSeed(1))
//	res, err := s.Run(ctx, pattern)
//	img := imageio.ToImage(res.Canvas.Patch())
package quilt
