package flow

import (
	"context"
	"math"
)

// EdmondsKarp computes the maximum flow source→sink
// using the Edmonds–Karp algorithm (BFS for shortest augmenting paths),
// and returns the source side of a minimum cut.
//
// It returns:
//   - maxFlow: total flow value
//   - sourceSide: true for nodes reachable from the source after the flow
//   - err: non-nil on bad indices, bad capacities, or cancellation.
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func EdmondsKarp(
	ctx context.Context,
	nodeCount int,
	edges []Edge,
	terminals []Terminal,
	opts Options,
) (maxFlow float64, sourceSide []bool, err error) {
	opts.normalize()
	if err = ctx.Err(); err != nil {
		return 0, nil, err
	}

	r, err := buildResidual(nodeCount, edges, terminals, opts)
	if err != nil {
		return 0, nil, err
	}

	parent := make([]int, len(r.adj)) // arc used to reach each node
	augmentCount := 0
	for {
		if err = ctx.Err(); err != nil {
			return 0, nil, err
		}

		// BFS to find the shortest augmenting path
		for i := range parent {
			parent[i] = -1
		}
		queue := []int{r.source}
		found := false
		for i := 0; i < len(queue) && !found; i++ {
			u := queue[i]
			for _, a := range r.adj[u] {
				v := r.to[a]
				if v == r.source || parent[v] >= 0 || r.cap[a] <= r.eps {
					continue
				}
				parent[v] = a
				if v == r.sink {
					found = true
					break
				}
				queue = append(queue, v)
			}
		}
		if !found {
			break
		}

		// Find bottleneck
		bottleneck := math.Inf(1)
		for v := r.sink; v != r.source; v = r.to[parent[v]^1] {
			if c := r.cap[parent[v]]; c < bottleneck {
				bottleneck = c
			}
		}

		// Augment
		for v := r.sink; v != r.source; v = r.to[parent[v]^1] {
			a := parent[v]
			r.cap[a] -= bottleneck
			r.cap[a^1] += bottleneck
		}
		maxFlow += bottleneck
		augmentCount++
		if math.IsInf(maxFlow, 0) || math.IsNaN(maxFlow) {
			return 0, nil, ErrInfeasible
		}
		opts.debug("edmonds-karp: augment", "pushed", bottleneck, "total", maxFlow)
	}
	opts.debug("edmonds-karp: done", "nodes", nodeCount, "augmentations", augmentCount)

	return r.finish(maxFlow)
}
