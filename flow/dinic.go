package flow

import (
	"context"
	"math"
)

// Dinic computes the maximum flow between the virtual source and sink of the
// network (nodeCount, edges, terminals) using Dinic's algorithm (level graph +
// blocking flows), and returns the source side of a minimum cut.
//
// It returns:
//   - maxFlow    : the total flow value (equal to the cut capacity)
//   - sourceSide : one entry per node; true for nodes on the source side
//   - err        : ErrNodeRange, EdgeError, ErrInfeasible,
//     or context cancellation error
//
// Steps:
//  1. Normalize options (O(1)).
//  2. Build the residual network via buildResidual (O(V + E)).
//  3. Repeat until no more augmenting paths:
//     a. Check for cancellation (O(1)).
//     b. BFS to build the level graph: distance from source for each node (O(V + E)).
//     c. If sink unreachable, break.
//     d. DFS-based blocking flow pushes until none remains, optionally
//     rebuilding the level graph every LevelRebuildInterval augmentations.
//  4. Extract the source side by residual reachability (O(V + E)).
//
// Complexity:
//
//	Time:   O(V²·E) in general; much less on planar grid-like networks.
//	Memory: O(V + E) for arcs and auxiliary slices (level, iter).
func Dinic(
	ctx context.Context,
	nodeCount int,
	edges []Edge,
	terminals []Terminal,
	opts Options,
) (maxFlow float64, sourceSide []bool, err error) {
	// 1) Normalize options
	opts.normalize()
	if err = ctx.Err(); err != nil {
		return 0, nil, err
	}

	// 2) Build residual network
	r, err := buildResidual(nodeCount, edges, terminals, opts)
	if err != nil {
		return 0, nil, err
	}

	// 3) Main loop: level graph + blocking flows
	level := make([]int, len(r.adj))
	iter := make([]int, len(r.adj))
	augmentCount := 0
	phases := 0
	for {
		// 3a) Cancellation check before BFS
		if err = ctx.Err(); err != nil {
			return 0, nil, err
		}

		// 3b) BFS to compute levels
		if !r.levels(level) {
			// 3c) Sink unreachable in level graph: done
			break
		}
		phases++

		// 3d) DFS-based blocking flow
		for i := range iter {
			iter[i] = 0
		}
		for {
			pushed := r.push(r.source, math.Inf(1), level, iter)
			if pushed <= 0 {
				break
			}
			maxFlow += pushed
			augmentCount++
			if math.IsInf(maxFlow, 0) || math.IsNaN(maxFlow) {
				return 0, nil, ErrInfeasible
			}
			opts.debug("dinic: augment", "pushed", pushed, "total", maxFlow)
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
			if err = ctx.Err(); err != nil {
				return 0, nil, err
			}
		}
	}
	opts.debug("dinic: done", "nodes", nodeCount, "phases", phases, "augmentations", augmentCount)

	// 4) Read the cut
	return r.finish(maxFlow)
}

// levels fills level with BFS distances from the source over arcs with
// residual capacity, and reports whether the sink was reached.
func (r *residual) levels(level []int) bool {
	for i := range level {
		level[i] = -1
	}
	queue := []int{r.source}
	level[r.source] = 0
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range r.adj[u] {
			v := r.to[a]
			if level[v] < 0 && r.cap[a] > r.eps {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return level[r.sink] >= 0
}

// push sends up to available units from u to the sink along the level graph,
// updates residual capacities in place, and returns the amount sent.
// iter[u] is only advanced past arcs that can carry nothing more this phase.
func (r *residual) push(u int, available float64, level, iter []int) float64 {
	if u == r.sink {
		return available
	}
	for ; iter[u] < len(r.adj[u]); iter[u]++ {
		a := r.adj[u][iter[u]]
		v := r.to[a]
		capUV := r.cap[a]
		if capUV <= r.eps || level[v] != level[u]+1 {
			continue
		}
		// Determine how much we can send: min(available, capUV)
		send := available
		if capUV < send {
			send = capUV
		}
		if pushed := r.push(v, send, level, iter); pushed > 0 {
			r.cap[a] -= pushed
			r.cap[a^1] += pushed
			return pushed
		}
	}
	return 0
}
