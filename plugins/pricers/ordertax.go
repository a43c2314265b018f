package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// OrderTaxKey identifies the EU VAT adapter of the order surface.
const OrderTaxKey = "pricing.order-tax-eu"

// OrderTax extracts EU VAT from the taxable rows of the order sheet,
// typically order-level discounts and fees whose tax was not extracted on
// their own surface. Position taxes are already folded in by OrderItems.
type OrderTax struct{}

// NewOrderTax creates the adapter.
func NewOrderTax() *OrderTax { return &OrderTax{} }

func (a *OrderTax) Key() string     { return OrderTaxKey }
func (a *OrderTax) Label() string   { return "EU VAT (Orders)" }
func (a *OrderTax) Version() string { return "1.0.0" }
func (a *OrderTax) OrderIndex() int { return 20 }

func (a *OrderTax) IsActivatedFor(c pricing.OrderPricingContext) bool {
	_, ok := VATRate(c.Order.CountryCode)

	return ok
}

func (a *OrderTax) Calculate(_ context.Context, c pricing.OrderPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	rate, ok := VATRate(c.Order.CountryCode)
	if !ok {
		return sheet, nil
	}

	return applyVAT(sheet, rate, a.Key()), nil
}
