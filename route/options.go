package route

import "context"

// Option configures Find via functional arguments.
type Option func(*Options)

// Options holds the tunable parameters of a route search.
type Options struct {
	// Ctx allows cancellation; it is checked once per dequeue.
	Ctx context.Context

	// OnEnqueue is called when a station is first discovered.
	// Receives the station name and its hop distance from the start.
	OnEnqueue func(station string, depth int)

	// OnDequeue is called when a station is expanded.
	OnDequeue func(station string, depth int)
}

// DefaultOptions returns Options with a background context and no-op
// hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		OnEnqueue: func(string, int) {},
		OnDequeue: func(string, int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers an observation hook for station discovery.
func WithOnEnqueue(fn func(station string, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers an observation hook for station expansion.
func WithOnDequeue(fn func(station string, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}
