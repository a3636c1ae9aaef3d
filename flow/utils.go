package flow

import (
	"math"
)

// residual is an index-based residual network. Arcs are stored in pairs:
// arc a and arc a^1 are reverses of each other.
type residual struct {
	n            int // real nodes; source = n, sink = n+1
	source, sink int
	adj          [][]int
	to           []int
	cap          []float64
	eps          float64
	base         float64 // flow already routed by terminal normalization
}

func (r *residual) addArc(u, v int, c, rc float64) {
	a := len(r.to)
	r.to = append(r.to, v, u)
	r.cap = append(r.cap, c, rc)
	r.adj[u] = append(r.adj[u], a)
	r.adj[v] = append(r.adj[v], a+1)
}

// buildResidual validates the input and constructs the residual network.
//
// Steps:
//  1. Validate every edge: endpoints in range, capacity finite and ≥ 0.
//     Self-loops and capacities ≤ Epsilon are dropped.
//  2. Accumulate terminal capacities per node (terminals are non-exclusive).
//  3. Normalize each node: min(src, sink) is routed directly (added to base);
//     two infinite capacities cancel, leaving the node free.
//  4. Add the remaining source→node and node→sink arcs.
//
// Complexity:
//
//	Time:   O(V + E).
//	Memory: O(V + E).
func buildResidual(nodeCount int, edges []Edge, terminals []Terminal, opts Options) (*residual, error) {
	if nodeCount < 0 {
		return nil, ErrNodeRange
	}
	r := &residual{
		n:      nodeCount,
		source: nodeCount,
		sink:   nodeCount + 1,
		adj:    make([][]int, nodeCount+2),
		to:     make([]int, 0, 2*(len(edges)+len(terminals))),
		cap:    make([]float64, 0, 2*(len(edges)+len(terminals))),
		eps:    opts.Epsilon,
	}

	// 1) Node–node edges.
	for _, e := range edges {
		if e.U < 0 || e.U >= nodeCount || e.V < 0 || e.V >= nodeCount {
			return nil, ErrNodeRange
		}
		if e.Cap < 0 || math.IsNaN(e.Cap) || math.IsInf(e.Cap, 0) {
			return nil, EdgeError{From: e.U, To: e.V, Cap: e.Cap}
		}
		if e.U == e.V || e.Cap <= opts.Epsilon {
			continue
		}
		r.addArc(e.U, e.V, e.Cap, e.Cap)
	}

	// 2) Accumulate terminals.
	src := make([]float64, nodeCount)
	snk := make([]float64, nodeCount)
	for _, t := range terminals {
		if t.Node < 0 || t.Node >= nodeCount {
			return nil, ErrNodeRange
		}
		if t.Source < 0 || math.IsNaN(t.Source) {
			return nil, EdgeError{From: Source, To: t.Node, Cap: t.Source}
		}
		if t.Sink < 0 || math.IsNaN(t.Sink) {
			return nil, EdgeError{From: t.Node, To: Sink, Cap: t.Sink}
		}
		src[t.Node] += t.Source
		snk[t.Node] += t.Sink
	}

	// 3–4) Normalize and add terminal arcs.
	for v := 0; v < nodeCount; v++ {
		s, t := src[v], snk[v]
		if math.IsInf(s, 1) && math.IsInf(t, 1) {
			continue
		}
		m := math.Min(s, t)
		r.base += m
		s -= m
		t -= m
		if s > opts.Epsilon {
			r.addArc(r.source, v, s, 0)
		}
		if t > opts.Epsilon {
			r.addArc(v, r.sink, t, 0)
		}
	}
	return r, nil
}

// sourceSide returns, for each real node, whether it is reachable from the
// source through arcs with residual capacity > Epsilon.
//
// Complexity: O(V + E).
func (r *residual) sourceSide() []bool {
	seen := make([]bool, r.n+2)
	queue := []int{r.source}
	seen[r.source] = true
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range r.adj[u] {
			v := r.to[a]
			if !seen[v] && r.cap[a] > r.eps {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return seen[:r.n]
}

// finish validates the total and extracts the cut.
func (r *residual) finish(flow float64) (float64, []bool, error) {
	total := r.base + flow
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return 0, nil, ErrInfeasible
	}
	return total, r.sourceSide(), nil
}
