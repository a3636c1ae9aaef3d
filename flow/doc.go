// Package flow computes minimum s–t cuts on the small, short-lived networks
// built for each patch placement.
//
// A network is given as a node count, a list of undirected edges with
// symmetric capacity, and a list of terminal edges that tie nodes to the
// virtual source and sink:
//
//	Edge{U, V, Cap}                 capacity Cap in both directions
//	Terminal{Node, Source, Sink}    capacity to the source and to the sink
//
// Terminal capacities may be +Inf to pin a node to one side. Capacities for
// the same node are summed; when both sides are +Inf they cancel and the node
// is decided by its neighbors.
//
// Algorithms:
//
//	Dinic         level graph + blocking flow by DFS.
//	              O(V²·E) worst case, far less on image-like grids.
//	              Default solver.
//	EdmondsKarp   shortest augmenting paths by BFS.
//	              O(V·E²). Reference solver.
//
// Both use O(V + E) memory.
//
// Both return the maximum flow value and the source side of a minimum cut:
// the nodes still reachable from the source in the final residual network.
// This labeling is deterministic for a fixed input.
//
// # API
//
//	func Dinic(ctx, nodeCount, edges, terminals, opts) (maxFlow float64, sourceSide []bool, err error)
//	func EdmondsKarp(ctx, nodeCount, edges, terminals, opts) (maxFlow float64, sourceSide []bool, err error)
//
// Solver abstracts over both so callers can plug in any implementation:
//
//	type Solver interface {
//	    MinCut(ctx context.Context, nodeCount int, edges []Edge, terminals []Terminal) ([]bool, error)
//	}
//
// Options:
//
//	Epsilon              : residual capacities ≤ Epsilon count as saturated (default 1e-9)
//	LevelRebuildInterval : Dinic only: rebuild the level graph every N augmentations
//	Logger               : debug log of phases and augmentations (nil = silent)
//
// # Errors
//
//	ErrNodeRange   an edge or terminal references a node outside [0, nodeCount).
//	ErrInfeasible  the flow diverged (an infinite-capacity source→sink path).
//	EdgeError      a negative, NaN, or infinite edge capacity, or a negative/NaN terminal.
//	context.Canceled / context.DeadlineExceeded if ctx is canceled.
package flow
