// Package centrality computes node importance scores over the arena
// graph: normalized degree centrality and weighted PageRank, each reduced
// to a ranked top-K list.
package centrality

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/steamgraph/graph-analysis-service/pkg/graph"
)

// Entry is one row of a ranking: the external node id and its score.
type Entry struct {
	NodeID string  `json:"id"`
	Score  float64 `json:"score"`
}

// ErrEmptyGraph reports a PageRank request over a graph without nodes.
var ErrEmptyGraph = errors.New("centrality: empty graph")

// Degree returns the degree centrality of every node: total degree
// normalized by n-1. All zeros when the graph has at most one node.
func Degree(g *graph.Graph) []float64 {
	n := g.NumNodes()
	scores := make([]float64, n)
	if n <= 1 {
		return scores
	}
	norm := 1.0 / float64(n-1)
	for i := range scores {
		scores[i] = float64(g.Degree(i)) * norm
	}
	return scores
}

// WeightedDegree returns the sum of incident edge weights per node,
// the hub score used to rank games without rewarding sheer edge count.
func WeightedDegree(g *graph.Graph) []float64 {
	scores := make([]float64, g.NumNodes())
	for i := range scores {
		scores[i] = g.WeightedDegree(i)
	}
	return scores
}

// PageRank computes weighted PageRank by power iteration. Edge weights
// act as transition weights; rank flowing out of a node is split
// proportionally to the weight of its out-edges. Dangling nodes spread
// their rank uniformly. If the iteration cap is reached before the
// residual drops under tol, the best-effort scores at the cap are
// returned without error.
func PageRank(g *graph.Graph, damping float64, maxIterations int, tol float64) ([]float64, error) {
	n := g.NumNodes()
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if damping < 0 || damping >= 1 {
		return nil, fmt.Errorf("centrality: damping %f outside [0,1)", damping)
	}

	outWeight := make([]float64, n)
	for i := 0; i < n; i++ {
		outWeight[i] = floats.Sum(g.SuccW[i])
	}

	rank := make([]float64, n)
	next := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		dangling := 0.0
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				dangling += rank[i]
			}
		}
		base := (1-damping)/float64(n) + damping*dangling/float64(n)
		for j := range next {
			next[j] = base
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				continue
			}
			flow := damping * rank[i] / outWeight[i]
			for k, j := range g.Succ[i] {
				next[j] += flow * g.SuccW[i][k]
			}
		}

		residual := 0.0
		for i := range rank {
			residual += math.Abs(next[i] - rank[i])
		}
		rank, next = next, rank
		if residual < tol {
			break
		}
	}

	// Guard against weight-induced drift so scores always sum to 1.
	if total := floats.Sum(rank); total > 0 {
		floats.Scale(1/total, rank)
	}
	return rank, nil
}

// TopK reduces scores to the k highest entries, sorted descending. Ties
// keep node load order (stable sort), matching the id table.
func TopK(ids []string, scores []float64, k int) []Entry {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if k > len(order) {
		k = len(order)
	}
	entries := make([]Entry, 0, k)
	for _, i := range order[:k] {
		entries = append(entries, Entry{NodeID: ids[i], Score: scores[i]})
	}
	return entries
}
