package gexf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDirected = `<?xml version="1.0" encoding="UTF-8"?>
<gexf xmlns="http://www.gexf.net/1.2draft" version="1.2">
  <graph defaultedgetype="directed">
    <attributes class="node">
      <attribute id="0" title="genre" type="string"/>
    </attributes>
    <nodes>
      <node id="10" label="Half-Life">
        <attvalues><attvalue for="0" value="FPS"/></attvalues>
      </node>
      <node id="20" label="Portal"/>
      <node id="30" label="Dota 2"/>
    </nodes>
    <edges>
      <edge id="0" source="10" target="20" weight="0.75"/>
      <edge id="1" source="20" target="30"/>
    </edges>
  </graph>
</gexf>`

func writeTempGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.gexf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDirectedGraph(t *testing.T) {
	doc, err := Load(writeTempGraph(t, sampleDirected))
	require.NoError(t, err)

	assert.True(t, doc.Directed)
	require.Len(t, doc.Nodes, 3)
	require.Len(t, doc.Edges, 2)

	assert.Equal(t, "10", doc.Nodes[0].ID)
	assert.Equal(t, "Half-Life", doc.Nodes[0].Label)
	assert.Equal(t, "FPS", doc.Nodes[0].Attrs["genre"])

	assert.Equal(t, 0.75, doc.Edges[0].Weight)
	assert.Equal(t, 1.0, doc.Edges[1].Weight, "missing weight defaults to 1.0")
}

func TestLoadUndirectedByDefault(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<gexf><graph><nodes>
		<node id="a"/><node id="b"/>
	</nodes><edges><edge source="a" target="b" weight="0.5"/></edges></graph></gexf>`))
	require.NoError(t, err)
	assert.False(t, doc.Directed)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no_such.gexf"))
	require.Error(t, err)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not gexf"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsDanglingEdge(t *testing.T) {
	_, err := Parse(strings.NewReader(`<gexf><graph>
		<nodes><node id="a"/></nodes>
		<edges><edge source="a" target="ghost"/></edges>
	</graph></gexf>`))
	require.ErrorIs(t, err, ErrDanglingEdge)
}

func TestParseRejectsBadWeight(t *testing.T) {
	_, err := Parse(strings.NewReader(`<gexf><graph>
		<nodes><node id="a"/><node id="b"/></nodes>
		<edges><edge source="a" target="b" weight="heavy"/></edges>
	</graph></gexf>`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseEmptyGraph(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<gexf><graph defaultedgetype="undirected"></graph></gexf>`))
	require.NoError(t, err)
	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Edges)
}
