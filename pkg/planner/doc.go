// Package planner turns route requests into reports.
//
// A [Planner] owns a loaded road network and answers [Request] values for
// the two request modes:
//
//   - [ModeDriving]: the fastest driving route, plus an alternative when the
//     request carries no restrictions. With avoid lists or an include node
//     the result is a single restricted route.
//   - [ModeDrivingWalking]: drive to a parking location, then walk. When the
//     constraints admit no such route the planner relaxes them step by step
//     and reports which constraints were dropped.
//
// Requests are validated against the graph before any search runs, so a bad
// vertex id is reported as a lookup error rather than as an unreachable
// destination.
//
// # Caching
//
// Reports are cached under a key derived from the graph fingerprint and the
// normalized request. The same request against the same dataset therefore
// hits the cache across CLI runs (file cache) or server replicas (Redis).
package planner
