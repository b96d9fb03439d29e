package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/steamgraph/graph-analysis-service/pkg/analysis"
)

// Exit codes let the orchestration layer tell failure classes apart
// without parsing messages.
const (
	exitUsage       = 1
	exitLoadError   = 2
	exitWriteError  = 3
	exitOutOfMemory = 4
	exitOther       = 5
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Graph Analysis Service")
		fmt.Println("======================")
		fmt.Println("Usage: analyze <graph.gexf> <display_name> <output_dir> [config_file]")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  analyze grafo_jaccard_27075_nodes.gexf \"Grafo Jaccard\" resultados/")
		os.Exit(exitUsage)
	}

	cfg := analysis.NewConfig()
	if len(os.Args) > 4 {
		if err := cfg.LoadFromFile(os.Args[4]); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", os.Args[4], err)
			os.Exit(exitUsage)
		}
	}
	logger := cfg.CreateLogger()

	pipeline := analysis.New(cfg, logger)
	req := analysis.Request{
		GraphPath: os.Args[1],
		Name:      os.Args[2],
		OutputDir: os.Args[3],
	}

	res, err := pipeline.Run(req)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrOutOfMemory):
			logger.Error().Err(err).Msg("out of memory: provision more memory or shrink the graph")
			os.Exit(exitOutOfMemory)
		case errors.Is(err, analysis.ErrLoad):
			logger.Error().Err(err).Msg("could not load graph")
			os.Exit(exitLoadError)
		case errors.Is(err, analysis.ErrWriteOutput):
			logger.Error().Err(err).Msg("could not write artifacts")
			os.Exit(exitWriteError)
		default:
			logger.Error().Err(err).Msg("analysis failed")
			os.Exit(exitOther)
		}
	}

	logger.Info().
		Str("name", res.Name).
		Int("nodes", res.NumNodes).
		Int("edges", res.NumEdges).
		Int("communities", res.NumCommunities).
		Msg("analysis complete")
}
