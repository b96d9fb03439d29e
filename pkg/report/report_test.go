package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamgraph/graph-analysis-service/pkg/centrality"
)

func sampleResult() *Result {
	res := NewResult("Grafo Jaccard", "grafo.gexf")
	res.NumNodes = 4
	res.NumEdges = 3
	res.MeanDegree = 1.5
	res.MaxDegree = 2
	res.Density = 0.25
	res.NumComponents = 2
	res.LargestComponent = 3
	res.SecondComponent = 1
	res.NumCommunities = 1
	res.Modularity = 0.123456789
	res.TopDegree = []centrality.Entry{
		{NodeID: "A", Score: 2.0 / 3.0},
		{NodeID: "B", Score: 2.0 / 3.0},
	}
	res.CommunitySizes = []int{3}
	return res
}

func TestWriteCreatesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	jsonPath, textPath, err := Write(dir, sampleResult())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "grafo_jaccard_analise.json"), jsonPath)
	assert.Equal(t, filepath.Join(dir, "grafo_jaccard_relatorio.txt"), textPath)

	for _, path := range []string{jsonPath, textPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	// No temp leftovers.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteJSONKeySet(t *testing.T) {
	dir := t.TempDir()
	jsonPath, _, err := Write(dir, sampleResult())
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{
		"nome", "arquivo", "num_nos", "num_arestas", "grau_medio",
		"grau_max", "grau_min", "densidade", "num_componentes",
		"tamanho_maior_componente", "tamanho_segunda_componente",
		"top_10_grau", "top_10_pagerank", "num_comunidades",
		"modularity", "avisos",
	} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "-")
	assert.Equal(t, "Grafo Jaccard", decoded["nome"])
	assert.Equal(t, float64(4), decoded["num_nos"])

	// Empty rankings serialize as [], never null.
	assert.Equal(t, []any{}, decoded["top_10_pagerank"])
}

func TestRenderFormatting(t *testing.T) {
	text := Render(sampleResult())

	assert.Contains(t, text, "RELATÓRIO DE ANÁLISE: GRAFO JACCARD")
	assert.Contains(t, text, "Grau médio: 1.50")
	assert.Contains(t, text, "Densidade: 0.25000000")
	assert.Contains(t, text, "Modularidade: 0.1235")
	assert.Contains(t, text, " 1. A: 0.666667")
	assert.NotContains(t, text, "Avisos")
}

func TestRenderWarningsSection(t *testing.T) {
	res := sampleResult()
	res.Warnings = append(res.Warnings, "pagerank: centrality: empty graph")
	text := Render(res)
	assert.Contains(t, text, "--- Avisos ---")
	assert.Contains(t, text, "AVISO: pagerank")
}

func TestWriteUnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "nested")
	_, _, err := Write(dir, sampleResult())
	require.Error(t, err)
}
