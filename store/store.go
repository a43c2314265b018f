// Package store defines the persistence interface for pricing results:
// calculated order rows and applied discounts. Implementations live in the
// memory and mongo subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/id"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// OrderCalculation is the persisted result of one pricing run: the order
// sheet's rows together with the currency they are denominated in.
type OrderCalculation struct {
	OrderID      id.ID             `json:"orderId" bson:"_id"`
	CurrencyCode string            `json:"currencyCode" bson:"currency_code"`
	Rows         []calculation.Row `json:"rows" bson:"rows"`
	CalculatedAt time.Time         `json:"calculatedAt" bson:"calculated_at"`
}

// Store persists pricing results. Implementations must be safe for
// concurrent use.
type Store interface {
	// SaveOrderCalculation stores the calculation, replacing any previous
	// calculation of the same order.
	SaveOrderCalculation(ctx context.Context, calc OrderCalculation) error

	// OrderCalculation returns the stored calculation of an order, or
	// ErrNotFound.
	OrderCalculation(ctx context.Context, orderID id.ID) (OrderCalculation, error)

	// SaveAppliedDiscounts replaces the applied discounts of an order.
	SaveAppliedDiscounts(ctx context.Context, orderID id.ID, discounts []discount.Applied) error

	// AppliedDiscounts returns the applied discounts of an order, oldest
	// first. An order without discounts yields an empty slice, not
	// ErrNotFound.
	AppliedDiscounts(ctx context.Context, orderID id.ID) ([]discount.Applied, error)

	// Migrate prepares the backing schema (collections, indexes).
	Migrate(ctx context.Context) error

	// Ping verifies the backing connection.
	Ping(ctx context.Context) error

	// Close releases the backing connection.
	Close(ctx context.Context) error
}
