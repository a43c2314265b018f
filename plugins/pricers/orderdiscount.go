package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// OrderDiscountKey identifies the order-level discount adapter. Discount
// adapters parameterize it with a FixedRate (absolute) or Rate
// (proportional) configuration.
const OrderDiscountKey = "pricing.order-discount"

// OrderDiscount applies order-wide discounts on top of the folded item
// total. Absolute discounts are capped so the order total never goes
// negative. Discount rows are emitted gross and taxable; tax extraction
// attributes the corresponding VAT reduction.
type OrderDiscount struct{}

// NewOrderDiscount creates the adapter.
func NewOrderDiscount() *OrderDiscount { return &OrderDiscount{} }

func (a *OrderDiscount) Key() string     { return OrderDiscountKey }
func (a *OrderDiscount) Label() string   { return "Order Discount" }
func (a *OrderDiscount) Version() string { return "1.0.0" }
func (a *OrderDiscount) OrderIndex() int { return 10 }

func (a *OrderDiscount) IsActivatedFor(c pricing.OrderPricingContext) bool {
	return len(c.Discounts) > 0
}

func (a *OrderDiscount) Calculate(_ context.Context, c pricing.OrderPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	remaining := sheet.Total().Amount

	for _, d := range c.Discounts {
		cfg := d.ConfigurationFor(a.Key())
		if cfg == nil || remaining <= 0 {
			continue
		}

		var amount int64
		switch {
		case cfg.FixedRate != 0:
			amount = cfg.FixedRate
			if amount > remaining {
				amount = remaining
			}
		case cfg.Rate != 0:
			amount = roundHalfAway(float64(remaining) * cfg.Rate)
		}

		if amount == 0 {
			continue
		}

		row := calculation.Row{
			Category:     calculation.CategoryDiscount,
			Amount:       -amount,
			CurrencyCode: sheet.Currency(),
			IsTaxable:    true,
			DiscountID:   d.ID.String(),
			Rate:         cfg.Rate,
		}

		sheet = sheet.Add(row.WithMeta(calculation.MetaAdapter, a.Key()))
		remaining -= amount
	}

	return sheet, nil
}
