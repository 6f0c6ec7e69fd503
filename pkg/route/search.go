package route

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

type direction int

const (
	forward  direction = iota // follow outgoing edges away from the root
	backward                  // follow incoming edges towards the root
)

// runner settles vertices from a root in non-decreasing distance order.
type runner[K cmp.Ordered] struct {
	g     *roadmap.Graph[K]
	mode  roadmap.Mode
	dir   direction
	avoid Exclusions[K]
	root  K
	*state[K]
}

func newRunner[K cmp.Ordered](g *roadmap.Graph[K], mode roadmap.Mode, dir direction, avoid Exclusions[K]) *runner[K] {
	return &runner[K]{
		g:     g,
		mode:  mode,
		dir:   dir,
		avoid: avoid,
		state: newState[K](g.VertexCount()),
	}
}

// run calls visit for every vertex as it is settled. The search ends when
// visit returns false or no reachable vertex is left. An excluded root
// settles nothing.
func (r *runner[K]) run(root K, visit func(id K, dist int64) bool) {
	r.root = root
	if r.avoid.AvoidsNode(root) {
		return
	}
	r.dist[root] = 0
	r.queue.Push(root, 0)

	for !r.queue.Empty() {
		u, d := r.queue.Pop()
		r.settled[u] = true
		if !visit(u, d) {
			return
		}
		r.relax(u, d)
	}
}

func (r *runner[K]) relax(u K, du int64) {
	edges := r.g.Outgoing(u)
	if r.dir == backward {
		edges = r.g.Incoming(u)
	}
	for _, e := range edges {
		next := e.To
		if r.dir == backward {
			next = e.From
		}
		if r.settled[next] || !e.Traversable(r.mode) {
			continue
		}
		if r.avoid.AvoidsNode(next) || r.avoid.AvoidsSegment(e.From, e.To) {
			continue
		}
		nd := addCost(du, e.Weight(r.mode))
		if nd >= r.distance(next) {
			continue
		}
		r.dist[next] = nd
		r.parent[next] = e
		if r.queue.Contains(next) {
			r.queue.DecreaseKey(next, nd)
		} else {
			r.queue.Push(next, nd)
		}
	}
}

func (r *runner[K]) tree() *Tree[K] {
	return &Tree[K]{
		root:     r.root,
		mode:     r.mode,
		backward: r.dir == backward,
		dist:     r.dist,
		parent:   r.parent,
	}
}

// Tree is the shortest-path tree a search leaves behind. It is read-only.
type Tree[K cmp.Ordered] struct {
	root     K
	target   K
	mode     roadmap.Mode
	backward bool
	dist     map[K]int64
	parent   map[K]*roadmap.Edge[K]
}

// Root returns the vertex the search started from.
func (t *Tree[K]) Root() K { return t.root }

// Mode returns the mode the tree was built in.
func (t *Tree[K]) Mode() roadmap.Mode { return t.mode }

// Cost returns the distance to the search target.
func (t *Tree[K]) Cost() int64 { return t.dist[t.target] }

// Distance returns the tentative distance to id. Only the target distance,
// and distances below it, are guaranteed to be final.
func (t *Tree[K]) Distance(id K) (int64, bool) {
	d, ok := t.dist[id]
	return d, ok
}

// Path returns the vertices from the root to id for a forward tree, or from
// id to the root for a backward tree, so the result always reads in travel
// order. It returns nil when id was never reached.
func (t *Tree[K]) Path(id K) []K {
	if _, ok := t.dist[id]; !ok {
		return nil
	}
	path := []K{id}
	for cur := id; cur != t.root; {
		e := t.parent[cur]
		if t.backward {
			cur = e.To
		} else {
			cur = e.From
		}
		path = append(path, cur)
	}
	if !t.backward {
		slices.Reverse(path)
	}
	return path
}

// Search runs a single-mode shortest-path search from source to dest that
// skips excluded vertices and segments as well as edges the mode cannot
// traverse. It stops as soon as dest is settled.
//
// Search returns ErrUnknownVertex when either endpoint is missing and
// ErrUnreachable when dest cannot be reached.
func Search[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, mode roadmap.Mode, avoid Exclusions[K]) (*Tree[K], error) {
	if err := requireVertices(g, source, dest); err != nil {
		return nil, err
	}

	r := newRunner(g, mode, forward, avoid)
	found := false
	r.run(source, func(id K, _ int64) bool {
		if id == dest {
			found = true
			return false
		}
		return true
	})
	if !found {
		return nil, ErrUnreachable
	}

	t := r.tree()
	t.target = dest
	return t, nil
}

// Shortest is Search followed by path reconstruction.
func Shortest[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, mode roadmap.Mode, avoid Exclusions[K]) (Route[K], error) {
	t, err := Search(g, source, dest, mode, avoid)
	if err != nil {
		return Route[K]{}, err
	}
	return Route[K]{Path: t.Path(dest), Cost: t.Cost()}, nil
}

func requireVertices[K cmp.Ordered](g *roadmap.Graph[K], ids ...K) error {
	for _, id := range ids {
		if !g.HasVertex(id) {
			return fmt.Errorf("%w: %v", ErrUnknownVertex, id)
		}
	}
	return nil
}
