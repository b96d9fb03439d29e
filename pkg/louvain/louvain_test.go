package louvain

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noLog() zerolog.Logger { return zerolog.Nop() }

// twoCliques builds two triangles joined by a single weak bridge.
func twoCliques(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph(6)
	edges := [][2]int{
		{0, 1}, {1, 2}, {0, 2},
		{3, 4}, {4, 5}, {3, 5},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1], 1.0))
	}
	require.NoError(t, g.AddEdge(2, 3, 0.1))
	return g
}

func TestRunSplitsTwoCliques(t *testing.T) {
	result, err := Run(twoCliques(t), DefaultConfig(), noLog())
	require.NoError(t, err)

	assert.Equal(t, 2, result.NumCommunities)
	assert.Greater(t, result.Modularity, 0.3)

	// Each clique lands whole in one community.
	assert.Equal(t, result.Membership[0], result.Membership[1])
	assert.Equal(t, result.Membership[1], result.Membership[2])
	assert.Equal(t, result.Membership[3], result.Membership[4])
	assert.Equal(t, result.Membership[4], result.Membership[5])
	assert.NotEqual(t, result.Membership[0], result.Membership[3])
}

func TestRunTriangleSingleCommunity(t *testing.T) {
	g := NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 1.0))
	require.NoError(t, g.AddEdge(1, 2, 2.0))
	require.NoError(t, g.AddEdge(2, 0, 1.0))

	result, err := Run(g, DefaultConfig(), noLog())
	require.NoError(t, err)

	// Too small to split: one community, and the all-inclusive
	// partition scores exactly zero.
	assert.Equal(t, 1, result.NumCommunities)
	assert.InDelta(t, 0.0, result.Modularity, 1e-12)
}

func TestRunEdgelessGraph(t *testing.T) {
	result, err := Run(NewGraph(3), DefaultConfig(), noLog())
	require.NoError(t, err)
	assert.Equal(t, 3, result.NumCommunities)
	assert.Zero(t, result.Modularity)
}

func TestRunEmptyGraph(t *testing.T) {
	_, err := Run(NewGraph(0), DefaultConfig(), noLog())
	require.ErrorIs(t, err, ErrEmptyGraph)
}

func TestRunMembershipIsPartition(t *testing.T) {
	g := twoCliques(t)
	result, err := Run(g, DefaultConfig(), noLog())
	require.NoError(t, err)

	require.Len(t, result.Membership, g.NumNodes())
	seen := make(map[int]bool)
	for _, c := range result.Membership {
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, result.NumCommunities)
		seen[c] = true
	}
	assert.Len(t, seen, result.NumCommunities, "community ids are compact")
}

func TestRunDeterministicWithFixedSeed(t *testing.T) {
	first, err := Run(twoCliques(t), DefaultConfig(), noLog())
	require.NoError(t, err)
	second, err := Run(twoCliques(t), DefaultConfig(), noLog())
	require.NoError(t, err)

	assert.Equal(t, first.Membership, second.Membership)
	assert.Equal(t, first.NumCommunities, second.NumCommunities)
	assert.InDelta(t, first.Modularity, second.Modularity, 1e-15)
}

func TestModularityBounded(t *testing.T) {
	result, err := Run(twoCliques(t), DefaultConfig(), noLog())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Modularity, -1.0)
	assert.LessOrEqual(t, result.Modularity, 1.0)
}

func TestAddEdgeRejectsNonPositiveWeight(t *testing.T) {
	g := NewGraph(2)
	require.Error(t, g.AddEdge(0, 1, 0))
	require.Error(t, g.AddEdge(0, 1, -0.5))
	require.Error(t, g.AddEdge(0, 5, 1.0))
}
