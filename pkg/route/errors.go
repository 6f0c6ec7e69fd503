package route

import "errors"

var (
	// ErrUnknownVertex is returned when a source, destination or include
	// vertex is not in the graph. Lookups fail before any search starts.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUnreachable is returned by [Search] when the destination cannot be
	// reached under the given exclusions.
	ErrUnreachable = errors.New("destination unreachable")

	// ErrNoPath is returned by [Hybrid] when no parking vertex is both
	// reachable by car and within the walking budget of the destination.
	ErrNoPath = errors.New("no park-and-walk route")

	// ErrNoAlternative is returned by the alternative finders when every
	// candidate search fails.
	ErrNoAlternative = errors.New("no alternative route")

	// ErrInvalidVia is returned by [Via] when the include vertex equals the
	// source or destination, or is itself excluded.
	ErrInvalidVia = errors.New("invalid include vertex")

	// ErrConstraintsExhausted is returned by [Relax] when even the
	// unconstrained park-and-walk search fails.
	ErrConstraintsExhausted = errors.New("no walking+driving path exists between source and destination under any relaxation")
)
