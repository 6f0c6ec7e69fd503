package roadmap

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrDuplicateVertex is returned by [Graph.AddVertex] when a vertex with the
	// same ID already exists.
	ErrDuplicateVertex = errors.New("duplicate vertex ID")

	// ErrDuplicateCode is returned by [Graph.AddVertex] when another vertex
	// already uses the same non-empty code.
	ErrDuplicateCode = errors.New("duplicate vertex code")

	// ErrUnknownSourceVertex is returned by [Graph.AddEdge] when the From vertex
	// does not exist.
	ErrUnknownSourceVertex = errors.New("unknown source vertex")

	// ErrUnknownTargetVertex is returned by [Graph.AddEdge] when the To vertex
	// does not exist.
	ErrUnknownTargetVertex = errors.New("unknown target vertex")

	// ErrNegativeWeight is returned by [Graph.AddEdge] for weights below zero.
	ErrNegativeWeight = errors.New("negative edge weight")
)

// Inf marks a road that cannot be traversed in a mode. It is also the
// distance of a vertex no search has reached.
const Inf int64 = math.MaxInt64

// Mode selects which of an edge's two weights a search uses.
type Mode int

const (
	// Driving uses the driving weight.
	Driving Mode = iota
	// Walking uses the walking weight.
	Walking
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Driving:
		return "driving"
	case Walking:
		return "walking"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Vertex is a location in the road network.
type Vertex[K cmp.Ordered] struct {
	ID      K      // Unique identifier
	Name    string // Human-readable location name
	Code    string // Short unique code used by dataset files
	Parking bool   // Whether a car can be left here
}

// Edge is a directed road between two vertices.
type Edge[K cmp.Ordered] struct {
	From    K
	To      K
	Driving int64 // Inf when the road cannot be driven
	Walking int64 // Inf when the road cannot be walked
}

// Weight returns the edge weight for mode m.
func (e Edge[K]) Weight(m Mode) int64 {
	if m == Walking {
		return e.Walking
	}
	return e.Driving
}

// Traversable reports whether the edge can be used in mode m.
func (e Edge[K]) Traversable(m Mode) bool { return e.Weight(m) != Inf }

// Graph is a directed road network with per-mode edge weights.
//
// The zero value is not usable - use New to create a Graph. A Graph is not
// safe for concurrent mutation, but any number of goroutines may read it once
// loading is finished.
type Graph[K cmp.Ordered] struct {
	vertices map[K]*Vertex[K]
	codes    map[string]K
	outgoing map[K][]*Edge[K]
	incoming map[K][]*Edge[K]
	edges    int
}

// New creates an empty Graph.
func New[K cmp.Ordered]() *Graph[K] {
	return &Graph[K]{
		vertices: make(map[K]*Vertex[K]),
		codes:    make(map[string]K),
		outgoing: make(map[K][]*Edge[K]),
		incoming: make(map[K][]*Edge[K]),
	}
}

// AddVertex adds a vertex to the graph. Returns ErrDuplicateVertex if the ID
// is taken and ErrDuplicateCode if the vertex has a code another vertex
// already uses.
func (g *Graph[K]) AddVertex(v Vertex[K]) error {
	if _, exists := g.vertices[v.ID]; exists {
		return ErrDuplicateVertex
	}
	if v.Code != "" {
		if _, exists := g.codes[v.Code]; exists {
			return ErrDuplicateCode
		}
		g.codes[v.Code] = v.ID
	}
	g.vertices[v.ID] = &v
	return nil
}

// AddEdge adds a directed edge between two existing vertices.
// Returns ErrUnknownSourceVertex or ErrUnknownTargetVertex when an endpoint
// is missing, and ErrNegativeWeight when either weight is below zero.
// Parallel edges are allowed; searches simply relax both.
func (g *Graph[K]) AddEdge(e Edge[K]) error {
	if _, ok := g.vertices[e.From]; !ok {
		return ErrUnknownSourceVertex
	}
	if _, ok := g.vertices[e.To]; !ok {
		return ErrUnknownTargetVertex
	}
	if e.Driving < 0 || e.Walking < 0 {
		return ErrNegativeWeight
	}
	edge := &e
	g.outgoing[e.From] = append(g.outgoing[e.From], edge)
	g.incoming[e.To] = append(g.incoming[e.To], edge)
	g.edges++
	return nil
}

// AddRoad adds a two-way road as a pair of opposite edges with the same
// weights.
func (g *Graph[K]) AddRoad(a, b K, driving, walking int64) error {
	if err := g.AddEdge(Edge[K]{From: a, To: b, Driving: driving, Walking: walking}); err != nil {
		return err
	}
	return g.AddEdge(Edge[K]{From: b, To: a, Driving: driving, Walking: walking})
}

// Vertex returns the vertex with the given ID and true, or nil and false if
// not found.
func (g *Graph[K]) Vertex(id K) (*Vertex[K], bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// HasVertex reports whether a vertex with the given ID exists.
func (g *Graph[K]) HasVertex(id K) bool {
	_, ok := g.vertices[id]
	return ok
}

// VertexByCode returns the vertex with the given code and true, or nil and
// false if no vertex uses it.
func (g *Graph[K]) VertexByCode(code string) (*Vertex[K], bool) {
	id, ok := g.codes[code]
	if !ok {
		return nil, false
	}
	return g.vertices[id], true
}

// IsParking reports whether id names an existing parking vertex.
func (g *Graph[K]) IsParking(id K) bool {
	v, ok := g.vertices[id]
	return ok && v.Parking
}

// Vertices returns all vertices sorted by ID.
func (g *Graph[K]) Vertices() []*Vertex[K] {
	out := make([]*Vertex[K], 0, len(g.vertices))
	for _, id := range slices.Sorted(maps.Keys(g.vertices)) {
		out = append(out, g.vertices[id])
	}
	return out
}

// Edges returns a copy of every edge, grouped by source vertex in ID order
// and in insertion order within a source.
func (g *Graph[K]) Edges() []Edge[K] {
	out := make([]Edge[K], 0, g.edges)
	for _, id := range slices.Sorted(maps.Keys(g.outgoing)) {
		for _, e := range g.outgoing[id] {
			out = append(out, *e)
		}
	}
	return out
}

// Outgoing returns the edges leaving id. The returned slice is a read-only
// view.
func (g *Graph[K]) Outgoing(id K) []*Edge[K] { return g.outgoing[id] }

// Incoming returns the edges arriving at id. The returned slice is a
// read-only view.
func (g *Graph[K]) Incoming(id K) []*Edge[K] { return g.incoming[id] }

// VertexCount returns the number of vertices.
func (g *Graph[K]) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of directed edges.
func (g *Graph[K]) EdgeCount() int { return g.edges }

// ParkingCount returns the number of parking vertices.
func (g *Graph[K]) ParkingCount() int {
	n := 0
	for _, v := range g.vertices {
		if v.Parking {
			n++
		}
	}
	return n
}
