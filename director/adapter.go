// Package director provides the generic adapter registry and calculation
// director shared by all pricing surfaces. A director owns an ordered set of
// adapters for one context type and rebuilds a pricing sheet by folding the
// active adapters over an empty sheet.
package director

import (
	"context"

	"github.com/unchainedshop/unchained-sub022/calculation"
)

// Context is the read-only input a pricing run is computed from. Concrete
// context types (product, order, delivery, payment) live with the engine;
// the director only needs the currency to seed the sheet.
type Context interface {
	CurrencyCode() string
}

// Adapter is one pricing plugin. Implementations must be stateless with
// respect to the calculation: all inputs come from the context and the
// sheet built so far, all outputs are rows on the returned sheet.
type Adapter[C Context] interface {
	// Key uniquely identifies the adapter within its director, e.g.
	// "pricing.product-discount". Registering a second adapter under the
	// same key replaces the first.
	Key() string

	// Label is a human-readable name for logs and admin surfaces.
	Label() string

	// Version of the adapter implementation.
	Version() string

	// OrderIndex determines execution order; lower runs first. Adapters
	// with equal indexes run in registration order.
	OrderIndex() int

	// IsActivatedFor reports whether the adapter participates in the run
	// for the given context.
	IsActivatedFor(c C) bool

	// Calculate appends the adapter's rows and returns the resulting
	// sheet. Returning an error aborts the whole run.
	Calculate(ctx context.Context, c C, sheet *calculation.Sheet) (*calculation.Sheet, error)
}

// Configurable is an optional capability: adapters that depend on external
// configuration report an error here when misconfigured, and the director
// skips them instead of aborting the run.
type Configurable interface {
	ConfigurationError() error
}
