package director

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry holds the adapters of one director. Registration is an upsert by
// key: re-registering a key replaces the adapter in place, keeping its
// original position so equal order indexes still resolve by first
// registration. Safe for concurrent use.
type Registry[C Context] struct {
	mu       sync.RWMutex
	adapters []Adapter[C]
	logger   *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger defaults to
// slog.Default().
func NewRegistry[C Context](logger *slog.Logger) *Registry[C] {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry[C]{logger: logger}
}

// Register adds the adapter, replacing any adapter already registered under
// the same key. Adapters without a key are rejected.
func (r *Registry[C]) Register(adapter Adapter[C]) {
	if adapter.Key() == "" {
		r.logger.Warn("rejecting pricing adapter with empty key",
			slog.String("label", adapter.Label()),
		)

		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.adapters {
		if existing.Key() == adapter.Key() {
			r.adapters[i] = adapter
			r.logger.Debug("replaced pricing adapter",
				slog.String("key", adapter.Key()),
				slog.String("version", adapter.Version()),
			)

			return
		}
	}

	r.adapters = append(r.adapters, adapter)
	r.logger.Debug("registered pricing adapter",
		slog.String("key", adapter.Key()),
		slog.String("label", adapter.Label()),
		slog.String("version", adapter.Version()),
		slog.Int("orderIndex", adapter.OrderIndex()),
	)
}

// Get returns the adapter registered under key, or false.
func (r *Registry[C]) Get(key string) (Adapter[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.adapters {
		if a.Key() == key {
			return a, true
		}
	}

	return nil, false
}

// Sorted returns all adapters ordered by OrderIndex, ties resolved by
// registration order.
func (r *Registry[C]) Sorted() []Adapter[C] {
	r.mu.RLock()
	out := make([]Adapter[C], len(r.adapters))
	copy(out, r.adapters)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex() < out[j].OrderIndex()
	})

	return out
}

// Len returns the number of registered adapters.
func (r *Registry[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.adapters)
}
