// Package metrograph derives the in-memory transit graph from
// station/line membership records.
//
// What
//
//   - Build groups memberships by line, sorts each line by order, and
//     links every consecutive pair of stations in both directions,
//     tagging each link with the line it belongs to.
//   - The result is a multigraph: two stations adjacent on more than
//     one line keep one parallel edge per line.
//   - Adjacency is stored as ordered slices, so neighbor iteration
//     order is exactly the insertion order of the build. Route search
//     relies on that order as its tie-break among equally short paths.
//   - Holder wraps a Graph behind a single-writer/multi-reader swap so
//     membership changes can be applied without a route query ever
//     observing a half-built graph.
//
// Why
//
//	The graph is rebuilt from data fetched through the
//	transit.MembershipSource seam, keeping the algorithmic core free
//	of storage concerns. A Graph is immutable once built and may be
//	shared freely across concurrent readers.
//
// Integrity
//
//	A build fails - rather than silently producing an inconsistent
//	graph - when a line carries two memberships with the same order
//	(ErrOrderConflict) or lists the same station twice
//	(ErrDuplicateMembership). Lines with a single station contribute
//	no edges. Only active lines should be fed to Build; the
//	FromSource helper applies that filter itself.
//
// Complexity: Build is O(M log M) over M memberships (per-line sort);
// neighbor lookup is O(1) to the slice.
package metrograph
