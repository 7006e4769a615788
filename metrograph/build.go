package metrograph

import (
	"context"
	"fmt"
	"sort"

	"github.com/urbanrail/metrofare/transit"
)

// Build derives the transit graph from the given memberships.
//
// Callers pass the memberships of active lines only; Build itself does
// not know about the Active flag (use FromSource to fetch and filter
// in one step). Memberships are grouped by line in first-seen order,
// each group is sorted by ascending Order, and every consecutive pair
// is linked in both directions with the line tag. That first-seen /
// ascending-order discipline fixes neighbor iteration order, which is
// the route finder's tie-break among equally short paths.
//
// Returns ErrOrderConflict, ErrDuplicateMembership, ErrEmptyStation or
// ErrEmptyLine when the data is ambiguous; the build never proceeds
// with an inconsistent graph.
func Build(memberships []transit.Membership) (*Graph, error) {
	// Group by line, preserving first-seen line order.
	groups := make(map[string][]transit.Membership)
	var lineOrder []string
	for _, m := range memberships {
		if m.Station == "" {
			return nil, fmt.Errorf("%w (line %q, order %d)", ErrEmptyStation, m.Line, m.Order)
		}
		if m.Line == "" {
			return nil, fmt.Errorf("%w (station %q)", ErrEmptyLine, m.Station)
		}
		if _, seen := groups[m.Line]; !seen {
			lineOrder = append(lineOrder, m.Line)
		}
		groups[m.Line] = append(groups[m.Line], m)
	}

	g := &Graph{adj: make(map[string][]Edge)}
	for _, line := range lineOrder {
		stops := groups[line]
		sort.SliceStable(stops, func(i, j int) bool { return stops[i].Order < stops[j].Order })

		if err := checkLine(line, stops); err != nil {
			return nil, err
		}

		for i, stop := range stops {
			if _, ok := g.adj[stop.Station]; !ok {
				g.adj[stop.Station] = nil
			}
			// Link to the immediately following station on this line;
			// the mirror edge covers the preceding direction.
			if i < len(stops)-1 {
				next := stops[i+1].Station
				g.adj[stop.Station] = append(g.adj[stop.Station], Edge{To: next, Line: line})
				g.adj[next] = append(g.adj[next], Edge{To: stop.Station, Line: line})
				g.edgeCount++
			}
		}
	}

	return g, nil
}

// checkLine validates one sorted line group: no equal order values, no
// repeated station.
func checkLine(line string, stops []transit.Membership) error {
	seen := make(map[string]struct{}, len(stops))
	for i, stop := range stops {
		if i > 0 && stop.Order == stops[i-1].Order {
			return fmt.Errorf("%w: line %q order %d (stations %q, %q)",
				ErrOrderConflict, line, stop.Order, stops[i-1].Station, stop.Station)
		}
		if _, dup := seen[stop.Station]; dup {
			return fmt.Errorf("%w: line %q station %q", ErrDuplicateMembership, line, stop.Station)
		}
		seen[stop.Station] = struct{}{}
	}

	return nil
}

// FromSource fetches the active lines and their memberships from src
// and builds the graph. Line order follows the source's ActiveLines
// enumeration, membership order within a line follows the source's
// position ordering.
func FromSource(ctx context.Context, src transit.MembershipSource) (*Graph, error) {
	lines, err := src.ActiveLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("metrograph: listing active lines: %w", err)
	}

	var memberships []transit.Membership
	for _, line := range lines {
		ms, err := src.MembershipsForLine(ctx, line.Name)
		if err != nil {
			return nil, fmt.Errorf("metrograph: listing memberships of %q: %w", line.Name, err)
		}
		memberships = append(memberships, ms...)
	}

	return Build(memberships)
}
