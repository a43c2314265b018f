package pricing

import (
	"errors"

	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/store"
)

// Sentinel errors of the pricing engine. Compare with errors.Is; returned
// errors may be wrapped with additional context.
var (
	// ErrNoProductPrice is returned when a product carries no catalog
	// price for the requested country and currency.
	ErrNoProductPrice = errors.New("pricing: no catalog price for country and currency")

	// ErrDiscountCodeInvalid is returned when no registered discount
	// adapter accepts a code for the order.
	ErrDiscountCodeInvalid = discount.ErrCodeNotFound

	// ErrDiscountAlreadyApplied is returned when a code resolves to a
	// discount that is already attached to the order.
	ErrDiscountAlreadyApplied = errors.New("pricing: discount already applied to order")

	// ErrDiscountNotFound is returned when a discount ID is not attached
	// to the order.
	ErrDiscountNotFound = errors.New("pricing: discount not found on order")

	// ErrDiscountNotRemovable is returned when the discount's adapter
	// forbids manual removal, or the discount was attached by the system.
	ErrDiscountNotRemovable = errors.New("pricing: discount cannot be removed manually")

	// ErrNoCalculation is returned when an order has no stored
	// calculation yet.
	ErrNoCalculation = errors.New("pricing: no calculation stored for order")

	// ErrStoreNotConfigured is returned by operations that need
	// persistence when the engine runs without a store.
	ErrStoreNotConfigured = errors.New("pricing: no store configured")
)

// IsNotFound reports whether err denotes a missing record, regardless of
// which layer produced it.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoCalculation) ||
		errors.Is(err, ErrDiscountNotFound) ||
		errors.Is(err, store.ErrNotFound)
}
