// Package route finds constrained minimum-cost routes over a roadmap.Graph.
//
// # Searches
//
// [Search] runs Dijkstra's algorithm in a single mode (driving or walking)
// while honouring an [Exclusions] set of vertices and directed segments that
// must not be used. [Hybrid] finds the cheapest park-and-walk route: drive
// from the source to a parking vertex, then walk to the destination within a
// walking-time budget.
//
// # Alternatives
//
// [DetourAlternative] and [HybridDetourAlternative] look for the best route
// that differs from a reference route by forbidding, one at a time, each
// segment of the reference. [DisjointAlternative] instead forbids every
// intermediate vertex of the reference at once.
//
// # Relaxation
//
// When no park-and-walk route satisfies all constraints, [Relax] walks the
// [Ladder] of relaxations in order and returns the first that succeeds,
// together with the message describing what was dropped.
//
// All search state is allocated per call. The graph is only read, so any
// number of searches may share one graph.
package route
