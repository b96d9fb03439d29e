package graph

import (
	"gonum.org/v1/gonum/stat"
)

// DegreeStats summarizes the degree multiset of a graph.
type DegreeStats struct {
	Mean float64
	Max  int
	Min  int
}

// Degrees returns the total degree of every node as floats, in node order.
func Degrees(g *Graph) []float64 {
	out := make([]float64, g.NumNodes())
	for i := range out {
		out[i] = float64(g.Degree(i))
	}
	return out
}

// ComputeDegreeStats computes mean, max and min degree. A graph without
// nodes yields all zeros.
func ComputeDegreeStats(g *Graph) DegreeStats {
	n := g.NumNodes()
	if n == 0 {
		return DegreeStats{}
	}
	degrees := Degrees(g)
	stats := DegreeStats{
		Mean: stat.Mean(degrees, nil),
		Max:  g.Degree(0),
		Min:  g.Degree(0),
	}
	for i := 1; i < n; i++ {
		d := g.Degree(i)
		if d > stats.Max {
			stats.Max = d
		}
		if d < stats.Min {
			stats.Min = d
		}
	}
	return stats
}

// Density returns actual edges over possible edges: m/(n(n-1)) for
// directed graphs, m/(n(n-1)/2) for undirected. Graphs with fewer than
// two nodes have density 0.
func Density(g *Graph) float64 {
	n := float64(g.NumNodes())
	if n <= 1 {
		return 0
	}
	possible := n * (n - 1)
	if !g.Directed {
		possible /= 2
	}
	return float64(g.EdgeCount) / possible
}
