package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/staragarcia/routeplanner/pkg/cache"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

type document struct {
	Vertices []vertex `json:"vertices"`
	Edges    []edge   `json:"edges"`
}

type vertex struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code,omitempty"`
	Parking bool   `json:"parking,omitempty"`
}

type edge struct {
	From    int    `json:"from"`
	To      int    `json:"to"`
	Driving *int64 `json:"driving"`
	Walking *int64 `json:"walking"`
}

func toWeight(w int64) *int64 {
	if w == roadmap.Inf {
		return nil
	}
	return &w
}

func fromWeight(w *int64) int64 {
	if w == nil {
		return roadmap.Inf
	}
	return *w
}

// WriteJSON encodes g as JSON and writes it to w. Vertices are written in ID
// order and edges grouped by source, so equal graphs encode identically.
// This format can be re-imported with [ReadJSON].
func WriteJSON(g *roadmap.Graph[int], w io.Writer) error {
	vs := g.Vertices()
	es := g.Edges()
	out := document{
		Vertices: make([]vertex, len(vs)),
		Edges:    make([]edge, len(es)),
	}
	for i, v := range vs {
		out.Vertices[i] = vertex{ID: v.ID, Name: v.Name, Code: v.Code, Parking: v.Parking}
	}
	for i, e := range es {
		out.Edges[i] = edge{From: e.From, To: e.To, Driving: toWeight(e.Driving), Walking: toWeight(e.Walking)}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a graph written by [WriteJSON]. Edges are directed; a
// two-way road appears as two edges.
//
// ReadJSON returns an error if the JSON is malformed, a vertex ID or code is
// duplicated, or an edge references an unknown vertex. Errors name the
// offending vertex or edge and wrap the roadmap sentinel errors.
func ReadJSON(r io.Reader) (*roadmap.Graph[int], error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := roadmap.New[int]()
	for _, v := range data.Vertices {
		if err := g.AddVertex(roadmap.Vertex[int]{ID: v.ID, Name: v.Name, Code: v.Code, Parking: v.Parking}); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	for _, e := range data.Edges {
		err := g.AddEdge(roadmap.Edge[int]{
			From:    e.From,
			To:      e.To,
			Driving: fromWeight(e.Driving),
			Walking: fromWeight(e.Walking),
		})
		if err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *roadmap.Graph[int], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*roadmap.Graph[int], error) {
	return ImportJSONFrom(context.Background(), nil, path)
}

// ImportJSONFrom is like ImportJSON, but http and https names are downloaded
// with fetch.
func ImportJSONFrom(ctx context.Context, fetch Fetcher, name string) (*roadmap.Graph[int], error) {
	r, err := open(ctx, fetch, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	g, err := ReadJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return g, nil
}

// Fingerprint returns a SHA-256 hash of the JSON encoding of g. Equal graphs
// share a fingerprint regardless of insertion order of vertices.
func Fingerprint(g *roadmap.Graph[int]) string {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}
