package roadmap

import (
	"errors"
	"testing"
)

func TestAddVertex(t *testing.T) {
	g := New[int]()
	if err := g.AddVertex(Vertex[int]{ID: 1, Code: "A"}); err != nil {
		t.Fatalf("AddVertex: %v", err)
	}

	tests := []struct {
		name string
		v    Vertex[int]
		want error
	}{
		{"duplicate id", Vertex[int]{ID: 1, Code: "Z"}, ErrDuplicateVertex},
		{"duplicate code", Vertex[int]{ID: 2, Code: "A"}, ErrDuplicateCode},
		{"empty code allowed twice", Vertex[int]{ID: 3}, nil},
		{"second empty code", Vertex[int]{ID: 4}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddVertex(tt.v); !errors.Is(err, tt.want) {
				t.Errorf("AddVertex() = %v, want %v", err, tt.want)
			}
		})
	}

	if g.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, want 3", g.VertexCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := New[int]()
	_ = g.AddVertex(Vertex[int]{ID: 1})
	_ = g.AddVertex(Vertex[int]{ID: 2})

	tests := []struct {
		name string
		e    Edge[int]
		want error
	}{
		{"ok", Edge[int]{From: 1, To: 2, Driving: 3, Walking: Inf}, nil},
		{"unknown source", Edge[int]{From: 9, To: 2}, ErrUnknownSourceVertex},
		{"unknown target", Edge[int]{From: 1, To: 9}, ErrUnknownTargetVertex},
		{"negative driving", Edge[int]{From: 1, To: 2, Driving: -1}, ErrNegativeWeight},
		{"negative walking", Edge[int]{From: 1, To: 2, Walking: -4}, ErrNegativeWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.e); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := len(g.Outgoing(1)); got != 1 {
		t.Errorf("len(Outgoing(1)) = %d, want 1", got)
	}
	if got := len(g.Incoming(2)); got != 1 {
		t.Errorf("len(Incoming(2)) = %d, want 1", got)
	}
	if got := g.Incoming(1); got != nil {
		t.Errorf("Incoming(1) = %v, want nil", got)
	}
}

func TestAddRoad(t *testing.T) {
	g := New[string]()
	_ = g.AddVertex(Vertex[string]{ID: "a"})
	_ = g.AddVertex(Vertex[string]{ID: "b"})

	if err := g.AddRoad("a", "b", 4, 9); err != nil {
		t.Fatalf("AddRoad: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", g.EdgeCount())
	}

	back := g.Outgoing("b")
	if len(back) != 1 || back[0].To != "a" || back[0].Driving != 4 || back[0].Walking != 9 {
		t.Errorf("reverse edge = %+v", back)
	}

	if err := g.AddRoad("a", "missing", 1, 1); !errors.Is(err, ErrUnknownTargetVertex) {
		t.Errorf("AddRoad to missing vertex = %v", err)
	}
}

func TestEdgeWeight(t *testing.T) {
	e := Edge[int]{Driving: 7, Walking: Inf}

	if e.Weight(Driving) != 7 {
		t.Errorf("Weight(Driving) = %d", e.Weight(Driving))
	}
	if e.Traversable(Walking) {
		t.Error("Traversable(Walking) = true for infinite walking weight")
	}
	if !e.Traversable(Driving) {
		t.Error("Traversable(Driving) = false")
	}
}

func TestLookups(t *testing.T) {
	g := New[int]()
	_ = g.AddVertex(Vertex[int]{ID: 3, Code: "C", Parking: true})
	_ = g.AddVertex(Vertex[int]{ID: 1, Code: "A"})
	_ = g.AddVertex(Vertex[int]{ID: 2, Code: "B", Parking: true})
	_ = g.AddRoad(3, 1, 1, 1)
	_ = g.AddEdge(Edge[int]{From: 1, To: 2, Driving: 2, Walking: 2})

	v, ok := g.VertexByCode("B")
	if !ok || v.ID != 2 {
		t.Errorf("VertexByCode(B) = %v, %v", v, ok)
	}
	if _, ok := g.VertexByCode("Q"); ok {
		t.Error("VertexByCode(Q) found a vertex")
	}
	if !g.IsParking(3) || g.IsParking(1) || g.IsParking(42) {
		t.Error("IsParking returned wrong values")
	}
	if g.ParkingCount() != 2 {
		t.Errorf("ParkingCount() = %d, want 2", g.ParkingCount())
	}

	var ids []int
	for _, v := range g.Vertices() {
		ids = append(ids, v.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("Vertices() order = %v, want [1 2 3]", ids)
	}

	edges := g.Edges()
	if len(edges) != 3 || edges[0].From != 1 || edges[2].From != 3 {
		t.Errorf("Edges() = %+v", edges)
	}
}

func TestModeString(t *testing.T) {
	if Driving.String() != "driving" || Walking.String() != "walking" {
		t.Errorf("Mode strings = %q, %q", Driving, Walking)
	}
	if Mode(7).String() != "mode(7)" {
		t.Errorf("unknown mode = %q", Mode(7))
	}
}
