package metrograph

import (
	"context"
	"sync"

	"github.com/urbanrail/metrofare/transit"
)

// Holder shares one Graph between many concurrent readers and a single
// rebuilding writer.
//
// Readers call Snapshot and keep using the returned Graph for the
// whole of one routing query; a concurrent Rebuild swaps the pointer
// atomically under the write lock, so no query ever observes a
// half-built graph. A failed rebuild leaves the previous snapshot in
// place.
type Holder struct {
	mu    sync.RWMutex
	graph *Graph
}

// NewHolder wraps an initial graph. A nil initial graph is allowed;
// Snapshot then returns nil until the first successful Rebuild.
func NewHolder(g *Graph) *Holder {
	return &Holder{graph: g}
}

// Snapshot returns the current graph. The result is immutable and
// remains valid after later rebuilds.
func (h *Holder) Snapshot() *Graph {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.graph
}

// Swap installs a pre-built graph.
func (h *Holder) Swap(g *Graph) {
	h.mu.Lock()
	h.graph = g
	h.mu.Unlock()
}

// Rebuild derives a fresh graph from src and installs it. The build
// runs outside the lock; on error the current graph is kept.
func (h *Holder) Rebuild(ctx context.Context, src transit.MembershipSource) error {
	g, err := FromSource(ctx, src)
	if err != nil {
		return err
	}
	h.Swap(g)

	return nil
}
