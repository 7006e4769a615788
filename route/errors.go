package route

import "errors"

// Sentinel errors for route search.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("route: graph is nil")

	// ErrSameStation is returned when start and end are the same
	// station. There is no trivial self-route; this is a product
	// decision, not degenerate handling.
	ErrSameStation = errors.New("route: start and end are the same station")

	// ErrStationNotFound is returned when the start station is absent
	// from the graph.
	ErrStationNotFound = errors.New("route: start station not found")

	// ErrNoRoute is returned when the destination is unreachable from
	// the start over the active-line graph. This is the "no route"
	// outcome, not a fault.
	ErrNoRoute = errors.New("route: no route between stations")
)
