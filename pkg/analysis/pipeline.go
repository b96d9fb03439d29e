package analysis

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/steamgraph/graph-analysis-service/pkg/centrality"
	"github.com/steamgraph/graph-analysis-service/pkg/gexf"
	"github.com/steamgraph/graph-analysis-service/pkg/graph"
	"github.com/steamgraph/graph-analysis-service/pkg/louvain"
	"github.com/steamgraph/graph-analysis-service/pkg/report"
)

// Request names one analysis run: the graph file, the display name used
// in the report, and the directory receiving the two artifacts. The
// orchestration layer validates these before invoking the pipeline.
type Request struct {
	GraphPath string
	Name      string
	OutputDir string
}

// Pipeline executes the stages strictly in sequence. The graph is
// read-only after load; the result record is the only accumulating
// state.
type Pipeline struct {
	cfg    *Config
	logger zerolog.Logger
}

// New builds a pipeline from configuration.
func New(cfg *Config, logger zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run processes one graph end to end and writes both artifacts. Load,
// metric and write failures are fatal; PageRank and community detection
// degrade to empty results carried as warnings in the report.
func (p *Pipeline) Run(req Request) (*report.Result, error) {
	res := report.NewResult(req.Name, req.GraphPath)

	// Stage 1: load.
	start := time.Now()
	doc, err := gexf.Load(req.GraphPath)
	if err != nil {
		return nil, fatal(ErrLoad, "loader", err)
	}
	g, err := graph.FromDocument(doc)
	if err != nil {
		return nil, fatal(ErrLoad, "loader", err)
	}
	doc = nil // the document model is no longer needed
	p.logger.Info().
		Str("graph", req.GraphPath).
		Int("nodes", g.NumNodes()).
		Int("edges", g.EdgeCount).
		Bool("directed", g.Directed).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("graph loaded")
	if err := checkMemoryBudget(p.cfg.MaxMemoryMB(), "loader"); err != nil {
		return nil, err
	}

	// Stage 2: structural metrics on the full graph and its undirected
	// projection.
	start = time.Now()
	res.NumNodes = g.NumNodes()
	res.NumEdges = g.EdgeCount
	stats := graph.ComputeDegreeStats(g)
	res.MeanDegree = stats.Mean
	res.MaxDegree = stats.Max
	res.MinDegree = stats.Min
	res.Density = graph.Density(g)

	projection := g.Undirected()
	components := graph.Components(projection)
	sizes := graph.ComponentSizes(components)
	res.NumComponents = len(components)
	if len(sizes) > 0 {
		res.LargestComponent = sizes[0]
	}
	if len(sizes) > 1 {
		res.SecondComponent = sizes[1]
	}
	p.logger.Info().
		Int("components", res.NumComponents).
		Float64("density", res.Density).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("structural metrics computed")

	// Stage 3: centrality rankings.
	start = time.Now()
	topK := p.cfg.RankingTopK()
	res.TopDegree = centrality.TopK(g.IDs, centrality.Degree(g), topK)
	res.TopWeightedDegree = centrality.TopK(g.IDs, centrality.WeightedDegree(g), topK)

	ranks, err := centrality.PageRank(g,
		p.cfg.PageRankDamping(), p.cfg.PageRankMaxIterations(), p.cfg.PageRankTolerance())
	if err != nil {
		p.warn(res, "pagerank", err.Error())
	} else {
		res.TopPageRank = centrality.TopK(g.IDs, ranks, topK)
	}
	p.logger.Info().
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("centrality computed")

	// Stage 4: community detection on the largest component.
	if err := checkMemoryBudget(p.cfg.MaxMemoryMB(), "communities"); err != nil {
		return nil, err
	}
	start = time.Now()
	if len(components) > 0 {
		p.detectCommunities(res, projection, components[0])
	}
	p.logger.Info().
		Int("communities", res.NumCommunities).
		Float64("modularity", res.Modularity).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("community detection finished")

	// Stage 5: report.
	jsonPath, textPath, err := report.Write(req.OutputDir, res)
	if err != nil {
		return nil, fatal(ErrWriteOutput, "report", err)
	}
	p.logger.Info().
		Str("json", jsonPath).
		Str("text", textPath).
		Int("warnings", len(res.Warnings)).
		Msg("artifacts written")
	return res, nil
}

// detectCommunities runs Louvain on the node-induced subgraph of the
// largest component. Any failure degrades to zero communities and zero
// modularity instead of aborting the run.
func (p *Pipeline) detectCommunities(res *report.Result, projection *graph.Projection, largest []int) {
	sub, err := componentSubgraph(projection, largest)
	if err != nil {
		p.warn(res, "communities", err.Error())
		return
	}

	cfg := louvain.Config{
		MaxLevels:     p.cfg.LouvainMaxLevels(),
		MaxIterations: p.cfg.LouvainMaxIterations(),
		MinGain:       p.cfg.LouvainMinModularity(),
		Seed:          p.cfg.LouvainRandomSeed(),
	}
	partition, err := louvain.Run(sub, cfg, p.logger)
	sub = nil // the working copy is scratch; let it go before reporting
	if err != nil {
		p.warn(res, "communities", err.Error())
		return
	}

	res.NumCommunities = partition.NumCommunities
	res.Modularity = partition.Modularity

	counts := make([]int, partition.NumCommunities)
	for _, c := range partition.Membership {
		counts[c]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	res.CommunitySizes = counts
}

// componentSubgraph copies the component's edges into a fresh Louvain
// graph with local indices.
func componentSubgraph(projection *graph.Projection, nodes []int) (*louvain.Graph, error) {
	local := make(map[int]int, len(nodes))
	for li, orig := range nodes {
		local[orig] = li
	}

	sub := louvain.NewGraph(len(nodes))
	for _, orig := range nodes {
		li := local[orig]
		for k, j := range projection.Adj[orig] {
			lj, inside := local[j]
			if !inside || orig > j {
				continue // each undirected edge is added once
			}
			if err := sub.AddEdge(li, lj, projection.W[orig][k]); err != nil {
				return nil, err
			}
		}
	}
	return sub, nil
}

func (p *Pipeline) warn(res *report.Result, stage, message string) {
	w := Warning{Stage: stage, Message: message}
	p.logger.Warn().Str("stage", stage).Msg(message)
	res.Warnings = append(res.Warnings, w.String())
}
