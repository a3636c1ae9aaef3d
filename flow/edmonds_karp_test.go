package flow_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/quilt/flow"
)

// randomNetwork builds a deterministic network with n nodes, edge density p,
// and a few finite terminal ties on each side.
func randomNetwork(n int, p float64, seed int64) ([]flow.Edge, []flow.Terminal) {
	r := rand.New(rand.NewSource(seed))
	var edges []flow.Edge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r.Float64() < p {
				edges = append(edges, flow.Edge{U: u, V: v, Cap: r.Float64()*10 + 1})
			}
		}
	}
	var terms []flow.Terminal
	for v := 0; v < n; v++ {
		switch r.Intn(4) {
		case 0:
			terms = append(terms, flow.Terminal{Node: v, Source: r.Float64() * 20})
		case 1:
			terms = append(terms, flow.Terminal{Node: v, Sink: r.Float64() * 20})
		}
	}
	return edges, terms
}

// cutCapacity sums the capacity crossing the partition side.
func cutCapacity(edges []flow.Edge, terms []flow.Terminal, side []bool) float64 {
	var c float64
	for _, e := range edges {
		if side[e.U] != side[e.V] {
			c += e.Cap
		}
	}
	for _, t := range terms {
		if side[t.Node] {
			c += t.Sink
		} else {
			c += t.Source
		}
	}
	return c
}

// EdmondsKarpSuite groups tests for Edmonds–Karp.
type EdmondsKarpSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *EdmondsKarpSuite) SetupTest() {
	s.ctx = context.Background()
}

// TestSimplePath: 0–1 (cap=5) between pinned terminals => maxFlow = 5.
func (s *EdmondsKarpSuite) TestSimplePath() {
	edges := []flow.Edge{{U: 0, V: 1, Cap: 5}}
	terms := []flow.Terminal{{Node: 0, Source: inf}, {Node: 1, Sink: inf}}

	mf, side, err := flow.EdmondsKarp(s.ctx, 2, edges, terms, flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 5.0, mf, "max flow should match single-edge capacity")
	require.Equal(s.T(), []bool{true, false}, side)
}

// TestNegativeCapacity yields EdgeError.
func (s *EdmondsKarpSuite) TestNegativeCapacity() {
	_, _, err := flow.EdmondsKarp(s.ctx, 2, []flow.Edge{{U: 0, V: 1, Cap: -1}}, nil, flow.DefaultOptions())
	var ee flow.EdgeError
	require.Error(s.T(), err)
	require.True(s.T(), errors.As(err, &ee), "error must be EdgeError")
	require.Equal(s.T(), -1.0, ee.Cap)
}

// TestEmptyNetwork: no nodes, no flow.
func (s *EdmondsKarpSuite) TestEmptyNetwork() {
	mf, side, err := flow.EdmondsKarp(s.ctx, 0, nil, nil, flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Zero(s.T(), mf)
	require.Empty(s.T(), side)
}

// TestMatchesDinic compares both algorithms on random networks.
func (s *EdmondsKarpSuite) TestMatchesDinic() {
	for seed := int64(1); seed <= 15; seed++ {
		edges, terms := randomNetwork(35, 0.12, seed)
		ek, ekSide, err := flow.EdmondsKarp(s.ctx, 35, edges, terms, flow.DefaultOptions())
		require.NoError(s.T(), err)
		dn, _, err := flow.Dinic(s.ctx, 35, edges, terms, flow.DefaultOptions())
		require.NoError(s.T(), err)
		require.InDelta(s.T(), dn, ek, 1e-6, "seed %d", seed)
		require.InDelta(s.T(), ek, cutCapacity(edges, terms, ekSide), 1e-6, "seed %d", seed)
	}
}

// TestSolversImplementInterface checks the Solver adapters.
func (s *EdmondsKarpSuite) TestSolversImplementInterface() {
	edges := []flow.Edge{{U: 0, V: 1, Cap: 1}, {U: 1, V: 2, Cap: 3}}
	terms := []flow.Terminal{{Node: 0, Source: inf}, {Node: 2, Sink: inf}}
	for _, solver := range []flow.Solver{
		flow.DinicSolver{Options: flow.DefaultOptions()},
		flow.EdmondsKarpSolver{Options: flow.DefaultOptions()},
	} {
		side, err := solver.MinCut(s.ctx, 3, edges, terms)
		require.NoError(s.T(), err)
		require.Equal(s.T(), []bool{true, false, false}, side)
	}
}

func TestEdmondsKarpSuite(t *testing.T) {
	suite.Run(t, new(EdmondsKarpSuite))
}
