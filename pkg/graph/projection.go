package graph

// Projection is the undirected view of a graph with direction dropped and
// parallel or reciprocal edges merged. Weights of merged edges are summed
// so that community detection sees the combined tie strength. It shares
// the id table with the source graph.
type Projection struct {
	IDs []string
	Adj [][]int
	W   [][]float64
}

// Undirected builds the undirected projection once; the receiver is not
// modified.
func (g *Graph) Undirected() *Projection {
	n := g.NumNodes()
	p := &Projection{
		IDs: g.IDs,
		Adj: make([][]int, n),
		W:   make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		merged := make(map[int]float64)
		order := make([]int, 0, len(g.Succ[i]))
		for k, j := range g.Succ[i] {
			if _, seen := merged[j]; !seen {
				order = append(order, j)
			}
			merged[j] += g.SuccW[i][k]
		}
		if g.Directed {
			for k, j := range g.Pred[i] {
				if _, seen := merged[j]; !seen {
					order = append(order, j)
				}
				merged[j] += g.PredW[i][k]
			}
		}
		p.Adj[i] = make([]int, len(order))
		p.W[i] = make([]float64, len(order))
		for k, j := range order {
			p.Adj[i][k] = j
			p.W[i][k] = merged[j]
		}
	}

	return p
}

// NumNodes returns the node count of the projection.
func (p *Projection) NumNodes() int { return len(p.IDs) }
