package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNodeRange is returned when an edge or terminal references a missing node.
var ErrNodeRange = errors.New("flow: node index out of range")

// ErrInfeasible is returned when the maximum flow is unbounded or undefined.
var ErrInfeasible = errors.New("flow: network has no finite cut")

// Source and Sink are the pseudo-node ids reported in EdgeError for terminal edges.
const (
	Source = -1
	Sink   = -2
)

// EdgeError is returned when a capacity is negative, NaN, or (for node–node
// edges) infinite.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: invalid capacity on edge %d→%d: %g", e.From, e.To, e.Cap)
}

// Edge is an undirected edge with capacity Cap in both directions.
type Edge struct {
	U, V int
	Cap  float64
}

// Terminal ties Node to the source and to the sink.
type Terminal struct {
	Node   int
	Source float64
	Sink   float64
}

// Options configures all max-flow algorithms.
//   - Epsilon: residual capacities ≤ Epsilon count as saturated (default 1e-9).
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations.
//   - Logger: receives debug records per phase; nil disables logging.
type Options struct {
	Epsilon              float64
	LevelRebuildInterval int
	Logger               *slog.Logger
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{Epsilon: 1e-9}
}

func (o *Options) normalize() {
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-9
	}
}

func (o *Options) debug(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}

// Solver computes a minimum cut. The returned slice has one entry per node;
// true marks the source side.
type Solver interface {
	MinCut(ctx context.Context, nodeCount int, edges []Edge, terminals []Terminal) ([]bool, error)
}

// DinicSolver implements Solver with Dinic.
type DinicSolver struct {
	Options Options
}

// MinCut implements Solver.
func (s DinicSolver) MinCut(ctx context.Context, nodeCount int, edges []Edge, terminals []Terminal) ([]bool, error) {
	_, side, err := Dinic(ctx, nodeCount, edges, terminals, s.Options)
	return side, err
}

// EdmondsKarpSolver implements Solver with Edmonds–Karp.
type EdmondsKarpSolver struct {
	Options Options
}

// MinCut implements Solver.
func (s EdmondsKarpSolver) MinCut(ctx context.Context, nodeCount int, edges []Edge, terminals []Terminal) ([]bool, error) {
	_, side, err := EdmondsKarp(ctx, nodeCount, edges, terminals, s.Options)
	return side, err
}
