// Package report assembles the analysis result record and writes the two
// output artifacts: a JSON document and a formatted text report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/steamgraph/graph-analysis-service/pkg/centrality"
)

// Result is the completed analysis record. The JSON key set matches the
// documents consumed downstream; fields tagged "-" only feed the text
// report.
type Result struct {
	Name             string             `json:"nome"`
	SourceFile       string             `json:"arquivo"`
	NumNodes         int                `json:"num_nos"`
	NumEdges         int                `json:"num_arestas"`
	MeanDegree       float64            `json:"grau_medio"`
	MaxDegree        int                `json:"grau_max"`
	MinDegree        int                `json:"grau_min"`
	Density          float64            `json:"densidade"`
	NumComponents    int                `json:"num_componentes"`
	LargestComponent int                `json:"tamanho_maior_componente"`
	SecondComponent  int                `json:"tamanho_segunda_componente"`
	TopDegree        []centrality.Entry `json:"top_10_grau"`
	TopPageRank      []centrality.Entry `json:"top_10_pagerank"`
	NumCommunities   int                `json:"num_comunidades"`
	Modularity       float64            `json:"modularity"`
	Warnings         []string           `json:"avisos"`

	TopWeightedDegree []centrality.Entry `json:"-"`
	CommunitySizes    []int              `json:"-"`
}

// NewResult returns a record with empty (not nil) collections so the
// serialized document always carries every key.
func NewResult(name, sourceFile string) *Result {
	return &Result{
		Name:              name,
		SourceFile:        sourceFile,
		TopDegree:         []centrality.Entry{},
		TopPageRank:       []centrality.Entry{},
		TopWeightedDegree: []centrality.Entry{},
		Warnings:          []string{},
	}
}

// Paths returns the artifact paths inside dir for the given result.
func Paths(dir string, res *Result) (jsonPath, textPath string) {
	base := slug(res.Name)
	return filepath.Join(dir, base+"_analise.json"), filepath.Join(dir, base+"_relatorio.txt")
}

// Write renders both artifacts into dir. Each file is written to a
// temporary name and renamed, so a failed run never leaves a partial
// artifact behind.
func Write(dir string, res *Result) (jsonPath, textPath string, err error) {
	jsonPath, textPath = Paths(dir, res)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("report: marshal result: %w", err)
	}
	data = append(data, '\n')
	if err := writeAtomic(jsonPath, data); err != nil {
		return "", "", err
	}
	if err := writeAtomic(textPath, []byte(Render(res))); err != nil {
		return "", "", err
	}
	return jsonPath, textPath, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString()[:8])
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("report: rename %s: %w", path, err)
	}
	return nil
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// Render produces the plain-text report.
func Render(res *Result) string {
	var b strings.Builder
	bar := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "%s\n", bar)
	fmt.Fprintf(&b, "RELATÓRIO DE ANÁLISE: %s\n", strings.ToUpper(res.Name))
	fmt.Fprintf(&b, "%s\n\n", bar)
	fmt.Fprintf(&b, "Arquivo: %s\n\n", res.SourceFile)

	fmt.Fprintf(&b, "--- Métricas Básicas ---\n")
	fmt.Fprintf(&b, "Número de vértices: %d\n", res.NumNodes)
	fmt.Fprintf(&b, "Número de arestas: %d\n", res.NumEdges)
	fmt.Fprintf(&b, "Grau médio: %.2f\n", res.MeanDegree)
	fmt.Fprintf(&b, "Grau máximo: %d\n", res.MaxDegree)
	fmt.Fprintf(&b, "Grau mínimo: %d\n", res.MinDegree)
	fmt.Fprintf(&b, "Densidade: %.8f\n\n", res.Density)

	fmt.Fprintf(&b, "--- Componentes Conexas ---\n")
	fmt.Fprintf(&b, "Número de componentes: %d\n", res.NumComponents)
	fmt.Fprintf(&b, "Tamanho da maior componente: %d\n", res.LargestComponent)
	fmt.Fprintf(&b, "Tamanho da segunda maior componente: %d\n\n", res.SecondComponent)

	fmt.Fprintf(&b, "--- Comunidades (maior componente) ---\n")
	fmt.Fprintf(&b, "Número de comunidades: %d\n", res.NumCommunities)
	fmt.Fprintf(&b, "Modularidade: %.4f\n", res.Modularity)
	if len(res.CommunitySizes) > 0 {
		fmt.Fprintf(&b, "Maiores comunidades:")
		for i, size := range res.CommunitySizes {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, " %d", size)
		}
		fmt.Fprintf(&b, "\n")
	}
	fmt.Fprintf(&b, "\n")

	writeRanking(&b, "Top 10 - Centralidade de Grau", res.TopDegree)
	writeRanking(&b, "Top 10 - PageRank", res.TopPageRank)
	if len(res.TopWeightedDegree) > 0 {
		writeRanking(&b, "Top 10 - Grau Ponderado (hubs)", res.TopWeightedDegree)
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "--- Avisos ---\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "AVISO: %s\n", w)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}

func writeRanking(b *strings.Builder, title string, entries []centrality.Entry) {
	fmt.Fprintf(b, "--- %s ---\n", title)
	if len(entries) == 0 {
		fmt.Fprintf(b, "(vazio)\n")
	}
	for i, e := range entries {
		fmt.Fprintf(b, "%2d. %s: %.6f\n", i+1, e.NodeID, e.Score)
	}
	fmt.Fprintf(b, "\n")
}
