package metrograph

import "errors"

// Sentinel errors reported by Build. All of them are data-integrity
// failures: the build aborts instead of proceeding with an ambiguous
// adjacency.
var (
	// ErrOrderConflict indicates two memberships of the same line carry
	// the same order value, leaving adjacency on that line undefined.
	ErrOrderConflict = errors.New("metrograph: conflicting order values within line")

	// ErrDuplicateMembership indicates the same station appears twice
	// on one line.
	ErrDuplicateMembership = errors.New("metrograph: duplicate station on line")

	// ErrEmptyStation indicates a membership with an empty station name.
	ErrEmptyStation = errors.New("metrograph: membership with empty station name")

	// ErrEmptyLine indicates a membership with an empty line name.
	ErrEmptyLine = errors.New("metrograph: membership with empty line name")
)
