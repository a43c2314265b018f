// Package discount implements the discount subsystem: discount adapters,
// the applied-discount record, and the director that decides which
// discounts are in effect for an order.
package discount

import (
	"context"

	"github.com/unchainedshop/unchained-sub022/commerce"
)

// Context carries the order-scoped inputs discount eligibility is decided
// from.
type Context struct {
	Order commerce.Order
	User  commerce.User
}

// CurrencyCode returns the order's currency.
func (c Context) CurrencyCode() string { return c.Order.CurrencyCode }

// Configuration is the parameter set a discount adapter hands to one
// pricing adapter. Which field applies depends on the receiving pricing
// adapter.
type Configuration struct {
	// Rate is a fractional discount, e.g. 0.5 for half price.
	Rate float64 `json:"rate,omitempty" bson:"rate,omitempty"`

	// FixedRate is an absolute discount in minor currency units.
	FixedRate int64 `json:"fixedRate,omitempty" bson:"fixed_rate,omitempty"`
}

// Adapter is one discount plugin. Eligibility predicates fail closed: an
// error (or panic) from any of them makes the discount ineligible, it
// never aborts pricing.
type Adapter interface {
	// Key uniquely identifies the adapter, e.g. "discount.hundred-off".
	Key() string

	// Label is a human-readable name for logs and admin surfaces.
	Label() string

	// Version of the adapter implementation.
	Version() string

	// OrderIndex orders adapters when resolving codes; lower wins first.
	OrderIndex() int

	// IsManualAdditionAllowed reports whether the given code may be
	// attached to an order by a user action.
	IsManualAdditionAllowed(code string) bool

	// IsManualRemovalAllowed reports whether an applied discount of this
	// adapter may be removed by a user action.
	IsManualRemovalAllowed() bool

	// IsValidForSystemTriggering reports whether the discount applies to
	// the order automatically, without a code.
	IsValidForSystemTriggering(ctx context.Context, c Context) (bool, error)

	// IsValidForCodeTriggering reports whether the given code activates
	// this discount for the order. Code matching is case-insensitive.
	IsValidForCodeTriggering(ctx context.Context, c Context, code string) (bool, error)

	// ConfigurationFor returns the discount parameters for the pricing
	// adapter identified by key, or nil when this discount does not
	// affect that adapter.
	ConfigurationFor(pricingAdapterKey string) *Configuration
}
