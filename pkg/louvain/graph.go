// Package louvain partitions a weighted undirected graph into communities
// by greedy modularity optimization: local node moves followed by
// aggregation into super-nodes, repeated until no further improvement.
package louvain

import "fmt"

type halfEdge struct {
	to     int
	weight float64
}

// Graph is the working graph for community detection: plain neighbor
// lists over dense node indices. Each undirected edge appears in the
// lists of both endpoints; a self-loop appears once but counts twice
// toward the node's degree, as usual for modularity.
type Graph struct {
	adj         [][]halfEdge
	degrees     []float64
	totalWeight float64
}

// NewGraph allocates a graph with n nodes and no edges.
func NewGraph(n int) *Graph {
	return &Graph{
		adj:     make([][]halfEdge, n),
		degrees: make([]float64, n),
	}
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.adj) }

// TotalWeight returns the sum of edge weights, each edge counted once.
func (g *Graph) TotalWeight() float64 { return g.totalWeight }

// AddEdge adds an undirected edge. Modularity is undefined for
// non-positive weights, so those are rejected.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	n := g.NumNodes()
	if u < 0 || u >= n || v < 0 || v >= n {
		return fmt.Errorf("louvain: node index out of range: %d-%d of %d", u, v, n)
	}
	if weight <= 0 {
		return fmt.Errorf("louvain: edge weight must be positive, got %f", weight)
	}

	g.adj[u] = append(g.adj[u], halfEdge{to: v, weight: weight})
	g.degrees[u] += weight
	if u == v {
		g.degrees[u] += weight
	} else {
		g.adj[v] = append(g.adj[v], halfEdge{to: u, weight: weight})
		g.degrees[v] += weight
	}
	g.totalWeight += weight
	return nil
}

// selfLoop returns the summed weight of self-loops at node u.
func (g *Graph) selfLoop(u int) float64 {
	total := 0.0
	for _, he := range g.adj[u] {
		if he.to == u {
			total += he.weight
		}
	}
	return total
}
