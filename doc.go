// Package pricing implements a calculation engine for commerce orders:
// catalog prices, discounts, delivery and payment fees and taxes are
// computed as append-only rows on per-entity pricing sheets.
//
// The engine is organized around pluggable adapters. Each pricing surface
// (product, order, delivery, payment) has a director that runs its
// registered adapters in order-index order over a context and folds their
// rows into a sheet. Discounts are adapters too: a discount adapter decides
// eligibility (by code or automatically) and parameterizes the pricing
// adapters that realize the reduction.
//
// Basic usage:
//
//	engine := pricing.New(pricing.WithLogger(logger))
//	plugins.RegisterDefaults(engine)
//
//	calc, err := engine.RecalculateOrder(ctx, pricing.OrderInput{
//		Order:     order,
//		User:      user,
//		Positions: positions,
//		Delivery:  &delivery,
//	})
//
// All monetary amounts are integer minor currency units. Sheets are
// immutable values, so independent orders can be priced concurrently.
package pricing
