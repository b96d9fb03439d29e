// Package gexf reads graphs persisted in the GEXF interchange format
// (nodes with ids, labels and attribute values; edges with source, target
// and an optional weight; a graph-wide defaultedgetype flag).
//
// Files in the wild reach several hundred MB, so the reader streams the
// document element by element instead of unmarshalling it whole.
package gexf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Node is a single graph node as encoded in the file.
type Node struct {
	ID    string
	Label string
	Attrs map[string]string
}

// Edge connects two nodes by their ids. Weight defaults to 1.0 when the
// file does not carry a weight attribute.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// Document is the parsed graph: node list, edge list and the directedness
// flag that applies to every edge.
type Document struct {
	Directed bool
	Nodes    []Node
	Edges    []Edge
}

var (
	// ErrMalformed reports a file that is not valid GEXF.
	ErrMalformed = errors.New("gexf: malformed document")
	// ErrDanglingEdge reports an edge whose endpoint is not in the node set.
	ErrDanglingEdge = errors.New("gexf: edge references unknown node")
)

type xmlAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
}

type xmlAttributes struct {
	Class string         `xml:"class,attr"`
	Attrs []xmlAttribute `xml:"attribute"`
}

type xmlAttvalue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type xmlNode struct {
	ID        string        `xml:"id,attr"`
	Label     string        `xml:"label,attr"`
	Attvalues []xmlAttvalue `xml:"attvalues>attvalue"`
}

type xmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Weight string `xml:"weight,attr"`
}

// Load parses the GEXF document at path. It fails if the file is missing,
// is not valid GEXF, or contains an edge whose endpoints are not declared
// in the node set.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gexf: open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("gexf: parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a GEXF document from r.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	doc := &Document{}
	attrTitles := make(map[string]string)
	sawGraph := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "graph":
			sawGraph = true
			for _, a := range start.Attr {
				if a.Name.Local == "defaultedgetype" {
					doc.Directed = a.Value == "directed"
				}
			}
		case "attributes":
			var section xmlAttributes
			if err := decoder.DecodeElement(&section, &start); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if section.Class == "node" {
				for _, a := range section.Attrs {
					attrTitles[a.ID] = a.Title
				}
			}
		case "node":
			var n xmlNode
			if err := decoder.DecodeElement(&n, &start); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if n.ID == "" {
				return nil, fmt.Errorf("%w: node without id", ErrMalformed)
			}
			node := Node{ID: n.ID, Label: n.Label}
			if len(n.Attvalues) > 0 {
				node.Attrs = make(map[string]string, len(n.Attvalues))
				for _, av := range n.Attvalues {
					key := av.For
					if title, ok := attrTitles[key]; ok && title != "" {
						key = title
					}
					node.Attrs[key] = av.Value
				}
			}
			doc.Nodes = append(doc.Nodes, node)
		case "edge":
			var e xmlEdge
			if err := decoder.DecodeElement(&e, &start); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if e.Source == "" || e.Target == "" {
				return nil, fmt.Errorf("%w: edge without source/target", ErrMalformed)
			}
			weight := 1.0
			if e.Weight != "" {
				weight, err = strconv.ParseFloat(e.Weight, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: edge weight %q: %v", ErrMalformed, e.Weight, err)
				}
			}
			doc.Edges = append(doc.Edges, Edge{Source: e.Source, Target: e.Target, Weight: weight})
		}
	}

	if !sawGraph {
		return nil, fmt.Errorf("%w: no <graph> element", ErrMalformed)
	}
	if err := validateEndpoints(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func validateEndpoints(doc *Document) error {
	known := make(map[string]struct{}, len(doc.Nodes))
	for _, n := range doc.Nodes {
		known[n.ID] = struct{}{}
	}
	for _, e := range doc.Edges {
		if _, ok := known[e.Source]; !ok {
			return fmt.Errorf("%w: %s", ErrDanglingEdge, e.Source)
		}
		if _, ok := known[e.Target]; !ok {
			return fmt.Errorf("%w: %s", ErrDanglingEdge, e.Target)
		}
	}
	return nil
}
