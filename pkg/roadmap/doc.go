// Package roadmap provides the weighted road network searched by the route
// package.
//
// # Overview
//
// A [Graph] holds vertices (locations) and directed edges (roads). Every edge
// carries two weights, one per [Mode]: the time it takes to drive the road and
// the time it takes to walk it. A road that cannot be used in a mode carries
// the [Inf] sentinel for that mode and is never traversed in it.
//
// Two-way roads are modelled as two opposite directed edges; [Graph.AddRoad]
// inserts both at once.
//
// # Basic Usage
//
//	g := roadmap.New[int]()
//	g.AddVertex(roadmap.Vertex[int]{ID: 1, Code: "A"})
//	g.AddVertex(roadmap.Vertex[int]{ID: 2, Code: "B", Parking: true})
//	g.AddRoad(1, 2, 5, roadmap.Inf)
//
// Searches read [Graph.Outgoing] to move forward from a vertex and
// [Graph.Incoming] to move backwards towards it. The graph never stores search
// state, so one graph can be shared by any number of searches once loading is
// complete.
//
// # Identifiers
//
// Vertex identifiers are any [cmp.Ordered] type. Ordering is used to break ties
// deterministically (lowest identifier first) wherever two candidates cost the
// same.
package roadmap
