package metrograph

import "sort"

// Edge is one directed half of a station-to-station link, tagged with
// the line it belongs to. An undirected link contributes one Edge to
// each endpoint's adjacency.
type Edge struct {
	// To is the neighbor station name.
	To string

	// Line is the line this link belongs to.
	Line string
}

// Graph is the derived transit adjacency structure.
//
// A Graph is immutable after Build returns and is therefore safe to
// share across any number of concurrent readers without locking.
// Neighbor slices preserve build insertion order; callers must not
// mutate them.
type Graph struct {
	adj       map[string][]Edge
	edgeCount int // undirected links, counted once
}

// HasStation reports whether the station participates in the graph.
// Stations on active lines always participate, even when their line
// contributed no edges.
func (g *Graph) HasStation(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// Neighbors returns the (neighbor, line) pairs reachable from the
// station in one hop, in build insertion order. Parallel edges over
// different lines appear once per line. Returns nil for unknown
// stations. The returned slice is shared; treat it as read-only.
func (g *Graph) Neighbors(name string) []Edge {
	return g.adj[name]
}

// Stations returns every station name in the graph, sorted
// lexicographically for reproducible enumeration.
func (g *Graph) Stations() []string {
	out := make([]string, 0, len(g.adj))
	for name := range g.adj {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// StationCount returns the number of stations in the graph.
func (g *Graph) StationCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected station-to-station links,
// each counted once per line it exists on.
func (g *Graph) EdgeCount() int { return g.edgeCount }
