package route_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/urbanrail/metrofare/metrograph"
	"github.com/urbanrail/metrofare/route"
	"github.com/urbanrail/metrofare/transit"
)

// buildGraph is a test helper over metrograph.Build.
func buildGraph(t *testing.T, memberships []transit.Membership) *metrograph.Graph {
	t.Helper()
	g, err := metrograph.Build(memberships)
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}

	return g
}

// twoLines is the canonical interchange fixture: Green A-B-C, Orange
// C-D-E, with C the interchange.
func twoLines(t *testing.T) *metrograph.Graph {
	t.Helper()

	return buildGraph(t, []transit.Membership{
		{Station: "A", Line: "Green", Order: 1},
		{Station: "B", Line: "Green", Order: 2},
		{Station: "C", Line: "Green", Order: 3, Interchange: true},
		{Station: "C", Line: "Orange", Order: 1, Interchange: true},
		{Station: "D", Line: "Orange", Order: 2},
		{Station: "E", Line: "Orange", Order: 3},
	})
}

// TestFind_Errors verifies invalid-input handling.
func TestFind_Errors(t *testing.T) {
	g := twoLines(t)

	if _, err := route.Find(nil, "A", "B"); !errors.Is(err, route.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	// same station is rejected before anything else, even for stations
	// absent from the graph
	if _, err := route.Find(g, "A", "A"); !errors.Is(err, route.ErrSameStation) {
		t.Errorf("A->A: want ErrSameStation, got %v", err)
	}
	if _, err := route.Find(g, "Nowhere", "Nowhere"); !errors.Is(err, route.ErrSameStation) {
		t.Errorf("unknown self trip: want ErrSameStation, got %v", err)
	}
	if _, err := route.Find(g, "Nowhere", "A"); !errors.Is(err, route.ErrStationNotFound) {
		t.Errorf("unknown start: want ErrStationNotFound, got %v", err)
	}
	if _, err := route.Find(g, "A", "Nowhere"); !errors.Is(err, route.ErrNoRoute) {
		t.Errorf("unknown end: want ErrNoRoute, got %v", err)
	}
}

// TestFind_AcrossTransfer covers the end-to-end interchange case:
// shortest path A..E spans both lines through C.
func TestFind_AcrossTransfer(t *testing.T) {
	g := twoLines(t)

	r, err := route.Find(g, "A", "E")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A", "B", "C", "D", "E"}; !reflect.DeepEqual(r.Path, want) {
		t.Errorf("Path = %v; want %v", r.Path, want)
	}
	if want := []string{"Green", "Green", "Orange", "Orange"}; !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Lines = %v; want %v", r.Lines, want)
	}
	if got, want := r.Hops(), 4; got != want {
		t.Errorf("Hops = %d; want %d", got, want)
	}
	if got, want := len(r.Lines), len(r.Path)-1; got != want {
		t.Errorf("len(Lines) = %d; want len(Path)-1 = %d", got, want)
	}
}

// TestFind_Disconnected ensures an unreachable destination yields
// ErrNoRoute, not a fault.
func TestFind_Disconnected(t *testing.T) {
	g := buildGraph(t, []transit.Membership{
		{Station: "A", Line: "Green", Order: 1},
		{Station: "B", Line: "Green", Order: 2},
		{Station: "P", Line: "Orange", Order: 1},
		{Station: "Q", Line: "Orange", Order: 2},
	})

	if _, err := route.Find(g, "A", "Q"); !errors.Is(err, route.ErrNoRoute) {
		t.Errorf("disconnected: want ErrNoRoute, got %v", err)
	}
}

// TestFind_ParallelLinesRecordFirst checks that when two lines connect
// the same consecutive stations, the line recorded for the hop is the
// first one inserted at build time.
func TestFind_ParallelLinesRecordFirst(t *testing.T) {
	g := buildGraph(t, []transit.Membership{
		{Station: "A", Line: "Red", Order: 1},
		{Station: "B", Line: "Red", Order: 2},
		{Station: "A", Line: "Blue", Order: 1},
		{Station: "B", Line: "Blue", Order: 2},
	})

	r, err := route.Find(g, "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Red"}; !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Lines = %v; want %v (build insertion order)", r.Lines, want)
	}
}

// TestFind_ShortestByExhaustiveComparison verifies, for every ordered
// station pair of a fixture with a shortcut line, that the returned
// hop count equals the independently computed BFS distance and that
// len(Lines) == len(Path)-1 throughout.
func TestFind_ShortestByExhaustiveComparison(t *testing.T) {
	// Circle line A-B-C-D-E plus an Express shortcut A-C-E: routes must
	// prefer the shortcut where it saves hops.
	g := buildGraph(t, []transit.Membership{
		{Station: "A", Line: "Circle", Order: 1},
		{Station: "B", Line: "Circle", Order: 2},
		{Station: "C", Line: "Circle", Order: 3},
		{Station: "D", Line: "Circle", Order: 4},
		{Station: "E", Line: "Circle", Order: 5},
		{Station: "A", Line: "Express", Order: 1},
		{Station: "C", Line: "Express", Order: 2},
		{Station: "E", Line: "Express", Order: 3},
	})

	stations := g.Stations()
	for _, from := range stations {
		want := distances(g, from)
		for _, to := range stations {
			if from == to {
				continue
			}
			r, err := route.Find(g, from, to)
			if err != nil {
				t.Fatalf("Find(%s,%s): %v", from, to, err)
			}
			if got := r.Hops(); got != want[to] {
				t.Errorf("Find(%s,%s) hops = %d; BFS distance = %d", from, to, got, want[to])
			}
			if len(r.Lines) != len(r.Path)-1 {
				t.Errorf("Find(%s,%s): len(Lines)=%d, len(Path)=%d", from, to, len(r.Lines), len(r.Path))
			}
		}
	}
}

// distances computes hop distances from start by plain BFS, as an
// independent oracle for the exhaustive comparison.
func distances(g *metrograph.Graph, start string) map[string]int {
	dist := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Neighbors(cur) {
			if _, seen := dist[e.To]; !seen {
				dist[e.To] = dist[cur] + 1
				queue = append(queue, e.To)
			}
		}
	}

	return dist
}

// TestFind_Hooks asserts the discovery hooks fire with increasing
// depths starting at the origin.
func TestFind_Hooks(t *testing.T) {
	g := twoLines(t)

	var enq []string
	var depths []int
	_, err := route.Find(g, "A", "E",
		route.WithOnEnqueue(func(station string, depth int) {
			enq = append(enq, station)
			depths = append(depths, depth)
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enq) == 0 || enq[0] != "A" || depths[0] != 0 {
		t.Errorf("first enqueue = %v@%v; want A@0", enq, depths)
	}
	for i := 1; i < len(depths); i++ {
		if depths[i] < depths[i-1] {
			t.Errorf("enqueue depths not non-decreasing: %v", depths)
			break
		}
	}
}

// TestFind_Cancellation verifies a cancelled context halts the search.
func TestFind_Cancellation(t *testing.T) {
	g := twoLines(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // immediate
	if _, err := route.Find(g, "A", "E", route.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancellation: want context.Canceled, got %v", err)
	}
}

// TestFind_ConcurrentSafety ensures concurrent searches over one shared
// graph do not interfere.
func TestFind_ConcurrentSafety(t *testing.T) {
	g := twoLines(t)

	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := route.Find(g, "A", "E")
			errs <- err
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent run #%d: unexpected error %v", i, err)
		}
	}
}
