// Package graph holds the in-memory graph used by the analysis pipeline:
// an arena representation with index-based node references, plus the
// structural metrics computed over it (degree statistics, density,
// connected components).
package graph

import (
	"fmt"

	"github.com/steamgraph/graph-analysis-service/pkg/gexf"
)

// Graph is an immutable adjacency representation. Nodes are referenced by
// dense indices; IDs maps an index back to the external identifier from
// the source file. For directed graphs Succ/Pred hold out- and
// in-neighbors; for undirected graphs every edge appears in the Succ list
// of both endpoints and Pred is nil.
type Graph struct {
	Directed bool
	IDs      []string
	Succ     [][]int
	SuccW    [][]float64
	Pred     [][]int
	PredW    [][]float64

	EdgeCount int

	index map[string]int
}

// FromDocument builds the arena graph from a parsed GEXF document.
// Node order follows the document, so rankings that break ties by load
// order stay stable across runs.
func FromDocument(doc *gexf.Document) (*Graph, error) {
	n := len(doc.Nodes)
	g := &Graph{
		Directed: doc.Directed,
		IDs:      make([]string, n),
		Succ:     make([][]int, n),
		SuccW:    make([][]float64, n),
		index:    make(map[string]int, n),
	}
	if doc.Directed {
		g.Pred = make([][]int, n)
		g.PredW = make([][]float64, n)
	}

	for i, node := range doc.Nodes {
		if _, dup := g.index[node.ID]; dup {
			return nil, fmt.Errorf("graph: duplicate node id %q", node.ID)
		}
		g.IDs[i] = node.ID
		g.index[node.ID] = i
	}

	for _, e := range doc.Edges {
		u, ok := g.index[e.Source]
		if !ok {
			return nil, fmt.Errorf("graph: unknown edge source %q", e.Source)
		}
		v, ok := g.index[e.Target]
		if !ok {
			return nil, fmt.Errorf("graph: unknown edge target %q", e.Target)
		}
		g.Succ[u] = append(g.Succ[u], v)
		g.SuccW[u] = append(g.SuccW[u], e.Weight)
		if doc.Directed {
			g.Pred[v] = append(g.Pred[v], u)
			g.PredW[v] = append(g.PredW[v], e.Weight)
		} else if u != v {
			g.Succ[v] = append(g.Succ[v], u)
			g.SuccW[v] = append(g.SuccW[v], e.Weight)
		}
		g.EdgeCount++
	}

	return g, nil
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.IDs) }

// IndexOf returns the dense index of an external node id.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Degree returns the total degree of node i: incident edge count for
// undirected graphs, in-degree plus out-degree for directed ones.
func (g *Graph) Degree(i int) int {
	if g.Directed {
		return len(g.Succ[i]) + len(g.Pred[i])
	}
	return len(g.Succ[i])
}

// WeightedDegree returns the sum of weights on edges incident to node i.
func (g *Graph) WeightedDegree(i int) float64 {
	total := 0.0
	for _, w := range g.SuccW[i] {
		total += w
	}
	if g.Directed {
		for _, w := range g.PredW[i] {
			total += w
		}
	}
	return total
}
