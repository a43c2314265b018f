package pricers

import (
	"context"
	"errors"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// ProductRoundKey identifies the price rounding adapter.
const ProductRoundKey = "pricing.product-round"

// ProductRound rounds every item amount up to the next multiple of the
// configured precision, e.g. to the next 5 cents. It rebuilds the sheet
// with the rounded rows, so it must run after the adapters whose rows it
// rounds and before tax extraction.
//
// Not part of the default adapter set; hosts register it where their
// market requires cash rounding.
type ProductRound struct {
	precision int64
}

// NewProductRound creates the adapter with the given rounding precision in
// minor currency units.
func NewProductRound(precision int64) *ProductRound {
	return &ProductRound{precision: precision}
}

func (a *ProductRound) Key() string     { return ProductRoundKey }
func (a *ProductRound) Label() string   { return "Price Rounding" }
func (a *ProductRound) Version() string { return "1.0.0" }
func (a *ProductRound) OrderIndex() int { return 5 }

// ConfigurationError reports a missing or unusable precision. The director
// skips the adapter in that case.
func (a *ProductRound) ConfigurationError() error {
	if a.precision <= 0 {
		return errors.New("rounding precision must be positive")
	}

	return nil
}

func (a *ProductRound) IsActivatedFor(_ pricing.ProductPricingContext) bool { return true }

func (a *ProductRound) Calculate(_ context.Context, _ pricing.ProductPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	rows := sheet.Rows()
	for i, row := range rows {
		row.Amount = roundToNext(row.Amount, a.precision)
		rows[i] = row.WithMeta(calculation.MetaAdapter, a.Key())
	}

	return sheet.Reset(rows...), nil
}

// roundToNext rounds amount away from zero to the next multiple of
// precision. Exact multiples stay unchanged.
func roundToNext(amount, precision int64) int64 {
	if precision <= 0 {
		return amount
	}

	rem := amount % precision
	if rem == 0 {
		return amount
	}
	if amount > 0 {
		return amount + (precision - rem)
	}

	return amount - (precision + rem)
}
