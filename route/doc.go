// Package route computes shortest metro routes over a metrograph.Graph
// and renders them as human-readable navigation instructions.
//
// What
//
//   - Find runs breadth-first search from a start station, treating
//     every hop as cost 1 regardless of line or physical distance, and
//     returns the station path together with the line used for each
//     hop. The path has the minimum number of hops; it is not the
//     minimum physical distance - a documented simplification.
//   - Describe turns a (path, lines) pair into the transfer-annotated
//     text printed on tickets: a start marker, one transfer marker per
//     line change, an arrival marker.
//
// Determinism
//
//	A station is marked visited when it is enqueued, so it is
//	discovered at most once and the search always terminates. Among
//	multiple shortest paths the one returned follows the neighbor
//	iteration order of the graph (insertion order at build time); when
//	parallel lines connect the same two consecutive stations the first
//	line encountered during expansion is recorded. Neither choice is
//	lexicographic or otherwise "best" - callers that need a canonical
//	answer pin a canonical build order.
//
// Errors
//
//   - ErrGraphNil          if the graph pointer is nil.
//   - ErrSameStation       if start == end (no trivial self-route, by
//     product decision).
//   - ErrStationNotFound   if the start station is not in the graph.
//   - ErrNoRoute           if the destination is unreachable. Callers
//     treat this as "no route", not as a fault.
//
// Complexity: O(V + E) time, O(V) memory.
package route
