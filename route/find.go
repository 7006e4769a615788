package route

import (
	"github.com/urbanrail/metrofare/metrograph"
)

// Route is a computed trip: an ordered station sequence and, in
// parallel, the line used for each hop. len(Lines) == len(Path)-1
// always holds for a Route returned by Find.
type Route struct {
	Path  []string
	Lines []string
}

// Hops returns the number of edges traversed.
func (r *Route) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}

	return len(r.Path) - 1
}

// Describe renders the route as navigation instructions. See Describe.
func (r *Route) Describe() string {
	return Describe(r.Path, r.Lines)
}

// queueItem pairs a station with its hop distance from the start.
type queueItem struct {
	station string
	depth   int
}

// walker encapsulates mutable search state.
type walker struct {
	graph   *metrograph.Graph
	opts    Options
	queue   []queueItem
	visited map[string]bool

	// parent and parentLine record, per discovered station, the station
	// it was discovered from and the line of the edge used. Together
	// they reconstruct both the path and the per-hop line list.
	parent     map[string]string
	parentLine map[string]string
}

// Find runs breadth-first search over g from start to end and returns
// the shortest route by hop count.
//
// Returns ErrGraphNil, ErrSameStation or ErrStationNotFound for
// invalid input, ErrNoRoute when the destination is unreachable, or
// the context error when the supplied context is cancelled.
func Find(g *metrograph.Graph, start, end string, opts ...Option) (*Route, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if start == end {
		return nil, ErrSameStation
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !g.HasStation(start) {
		return nil, ErrStationNotFound
	}

	n := g.StationCount()
	w := &walker{
		graph:      g,
		opts:       o,
		queue:      make([]queueItem, 0, n),
		visited:    make(map[string]bool, n),
		parent:     make(map[string]string, n),
		parentLine: make(map[string]string, n),
	}

	w.enqueue(start, 0)
	found, err := w.loop(end)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoRoute
	}

	return w.reconstruct(start, end), nil
}

// enqueue marks the station visited, fires OnEnqueue, and appends it
// to the queue. Marking on enqueue (not dequeue) guarantees at most
// one discovery per station.
func (w *walker) enqueue(station string, depth int) {
	w.visited[station] = true
	w.opts.OnEnqueue(station, depth)
	w.queue = append(w.queue, queueItem{station: station, depth: depth})
}

// loop processes the queue until end is expanded, the queue drains, or
// the context is cancelled.
func (w *walker) loop(end string) (bool, error) {
	for len(w.queue) > 0 {
		// cancellation check (once per dequeue)
		select {
		case <-w.opts.Ctx.Done():
			return false, w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.opts.OnDequeue(item.station, item.depth)

		if item.station == end {
			return true, nil
		}

		for _, edge := range w.graph.Neighbors(item.station) {
			if w.visited[edge.To] {
				continue
			}
			w.parent[edge.To] = item.station
			w.parentLine[edge.To] = edge.Line
			w.enqueue(edge.To, item.depth+1)
		}
	}

	return false, nil
}

// reconstruct walks the parent links back from end to start and
// reverses them into a forward Route.
func (w *walker) reconstruct(start, end string) *Route {
	var path, lines []string
	for cur := end; cur != start; cur = w.parent[cur] {
		path = append(path, cur)
		lines = append(lines, w.parentLine[cur])
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	return &Route{Path: path, Lines: lines}
}
