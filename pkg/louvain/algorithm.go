package louvain

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog"
)

// Config carries the algorithm parameters.
type Config struct {
	MaxLevels     int
	MaxIterations int
	MinGain       float64
	Seed          int64
}

// DefaultConfig returns the parameters used in production runs. The seed
// is fixed so repeated runs over the same graph produce the same
// partition.
func DefaultConfig() Config {
	return Config{
		MaxLevels:     10,
		MaxIterations: 100,
		MinGain:       1e-7,
		Seed:          42,
	}
}

// Result is the final partition.
type Result struct {
	Membership     []int // node index -> compact community id
	NumCommunities int
	Modularity     float64
	Levels         int
}

// ErrEmptyGraph reports a run over a graph without nodes.
var ErrEmptyGraph = errors.New("louvain: empty graph")

// state tracks community assignments on one level's graph.
type state struct {
	graph   *Graph
	comm    []int
	commTot []float64 // sum of member degrees per community
	commIn  []float64 // twice the internal edge weight per community
}

func newState(g *Graph) *state {
	n := g.NumNodes()
	s := &state{
		graph:   g,
		comm:    make([]int, n),
		commTot: make([]float64, n),
		commIn:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.comm[i] = i
		s.commTot[i] = g.degrees[i]
		s.commIn[i] = 2 * g.selfLoop(i)
	}
	return s
}

// modularity computes Newman's Q for the current assignment:
// Q = sum over communities of in/2m - (tot/2m)^2.
func (s *state) modularity() float64 {
	m := s.graph.totalWeight
	if m == 0 {
		return 0
	}
	m2 := 2 * m
	q := 0.0
	for c := range s.commTot {
		if s.commTot[c] == 0 && s.commIn[c] == 0 {
			continue
		}
		q += s.commIn[c]/m2 - (s.commTot[c]/m2)*(s.commTot[c]/m2)
	}
	return q
}

// neighborCommWeights sums the edge weight from node to each adjacent
// community, self-loops excluded. Communities come back in first-seen
// order so the best-community scan stays deterministic.
func (s *state) neighborCommWeights(node int) ([]int, map[int]float64) {
	weights := make(map[int]float64)
	order := make([]int, 0, len(s.graph.adj[node]))
	for _, he := range s.graph.adj[node] {
		if he.to == node {
			continue
		}
		c := s.comm[he.to]
		if _, seen := weights[c]; !seen {
			order = append(order, c)
		}
		weights[c] += he.weight
	}
	return order, weights
}

// optimize runs local move passes until a full pass moves nothing or the
// iteration cap is hit. Reports whether any node changed community.
func (s *state) optimize(cfg Config, rng *rand.Rand, logger zerolog.Logger) bool {
	n := s.graph.NumNodes()
	m := s.graph.totalWeight
	if m == 0 {
		return false
	}

	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}

	improved := false
	for iteration := 0; iteration < cfg.MaxIterations; iteration++ {
		rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

		moves := 0
		for _, node := range nodes {
			old := s.comm[node]
			degree := s.graph.degrees[node]
			loop := s.graph.selfLoop(node)
			order, weights := s.neighborCommWeights(node)

			// Detach the node so every candidate community, the old one
			// included, is scored from the same empty start.
			s.commTot[old] -= degree
			s.commIn[old] -= 2 * (weights[old] + loop)

			best := old
			bestGain := weights[old]/m - s.commTot[old]*degree/(2*m*m)
			for _, c := range order {
				if c == old {
					continue
				}
				gain := weights[c]/m - s.commTot[c]*degree/(2*m*m)
				if gain > bestGain+cfg.MinGain {
					best = c
					bestGain = gain
				}
			}

			s.commTot[best] += degree
			s.commIn[best] += 2 * (weights[best] + loop)
			s.comm[node] = best
			if best != old {
				moves++
			}
		}

		if moves > 0 {
			improved = true
		}
		logger.Debug().Int("iteration", iteration+1).Int("moves", moves).Msg("local move pass")
		if moves == 0 {
			break
		}
	}
	return improved
}

// aggregate collapses communities into super-nodes, summing the weights
// of the edges between them. It returns the super-graph and the mapping
// from each node of the current graph to its super-node index.
func (s *state) aggregate() (*Graph, []int, error) {
	n := s.graph.NumNodes()
	compact := make(map[int]int)
	nodeToSuper := make([]int, n)
	for i := 0; i < n; i++ {
		c := s.comm[i]
		super, ok := compact[c]
		if !ok {
			super = len(compact)
			compact[c] = super
		}
		nodeToSuper[i] = super
	}

	superGraph := NewGraph(len(compact))
	type pair struct{ a, b int }
	sums := make(map[pair]float64)
	keys := make([]pair, 0)
	for i := 0; i < n; i++ {
		for _, he := range s.graph.adj[i] {
			if he.to < i {
				continue // each undirected edge is visited from its lower endpoint
			}
			a, b := nodeToSuper[i], nodeToSuper[he.to]
			if a > b {
				a, b = b, a
			}
			key := pair{a, b}
			if _, seen := sums[key]; !seen {
				keys = append(keys, key)
			}
			sums[key] += he.weight
		}
	}
	for _, key := range keys {
		if err := superGraph.AddEdge(key.a, key.b, sums[key]); err != nil {
			return nil, nil, err
		}
	}
	return superGraph, nodeToSuper, nil
}

// Run executes the full multi-level algorithm.
func Run(g *Graph, cfg Config, logger zerolog.Logger) (*Result, error) {
	n := g.NumNodes()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}
	if g.totalWeight == 0 {
		// Edgeless graph: every node is its own community, Q is 0.
		return &Result{Membership: membership, NumCommunities: n}, nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	current := g
	levels := 0

	for level := 0; level < cfg.MaxLevels; level++ {
		s := newState(current)
		if !s.optimize(cfg, rng, logger) {
			break
		}
		superGraph, nodeToSuper, err := s.aggregate()
		if err != nil {
			return nil, err
		}
		levels++
		for i := range membership {
			membership[i] = nodeToSuper[membership[i]]
		}
		logger.Debug().
			Int("level", level).
			Int("nodes", current.NumNodes()).
			Int("communities", superGraph.NumNodes()).
			Float64("modularity", s.modularity()).
			Msg("level aggregated")
		if superGraph.NumNodes() >= current.NumNodes() {
			current = superGraph
			break
		}
		current = superGraph
	}

	// Nodes of the last graph are the final communities; the singleton
	// partition of the aggregated graph scores the same Q as the
	// aggregated partition of the original graph.
	final := newState(current)
	return &Result{
		Membership:     membership,
		NumCommunities: current.NumNodes(),
		Modularity:     final.modularity(),
		Levels:         levels,
	}, nil
}
