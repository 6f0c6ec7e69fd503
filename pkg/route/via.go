package route

import (
	"cmp"
	"fmt"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// Via returns the best single-mode route from source to dest that passes
// through via. Both legs honour the same exclusions and are joined at via.
//
// Via returns ErrInvalidVia when via equals an endpoint or is excluded, and
// ErrUnreachable when either leg fails.
func Via[K cmp.Ordered](g *roadmap.Graph[K], source, via, dest K, mode roadmap.Mode, avoid Exclusions[K]) (Route[K], error) {
	if err := requireVertices(g, source, via, dest); err != nil {
		return Route[K]{}, err
	}
	if via == source || via == dest {
		return Route[K]{}, fmt.Errorf("%w: %v is an endpoint", ErrInvalidVia, via)
	}
	if avoid.AvoidsNode(via) {
		return Route[K]{}, fmt.Errorf("%w: %v is excluded", ErrInvalidVia, via)
	}

	first, err := Shortest(g, source, via, mode, avoid)
	if err != nil {
		return Route[K]{}, err
	}
	second, err := Shortest(g, via, dest, mode, avoid)
	if err != nil {
		return Route[K]{}, err
	}

	path := make([]K, 0, len(first.Path)+len(second.Path)-1)
	path = append(path, first.Path...)
	path = append(path, second.Path[1:]...)
	return Route[K]{Path: path, Cost: addCost(first.Cost, second.Cost)}, nil
}
