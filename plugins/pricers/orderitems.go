package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// OrderItemsKey identifies the position folding adapter.
const OrderItemsKey = "pricing.order-items"

// MetaPosition carries the order position ID on folded rows.
const MetaPosition = "position"

// OrderItems folds the finished position sheets into the order sheet: one
// net item row plus one tax row per position. The folded rows are marked
// non-taxable since their tax is already extracted.
type OrderItems struct{}

// NewOrderItems creates the adapter.
func NewOrderItems() *OrderItems { return &OrderItems{} }

func (a *OrderItems) Key() string     { return OrderItemsKey }
func (a *OrderItems) Label() string   { return "Order Items" }
func (a *OrderItems) Version() string { return "1.0.0" }
func (a *OrderItems) OrderIndex() int { return 0 }

func (a *OrderItems) IsActivatedFor(_ pricing.OrderPricingContext) bool { return true }

func (a *OrderItems) Calculate(_ context.Context, c pricing.OrderPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	for _, p := range c.Positions {
		sheet = foldSheet(sheet, p.Sheet, calculation.CategoryItem, a.Key(), p.Position.ID.String())
	}

	return sheet, nil
}

// foldSheet appends the net total and tax total of an inner sheet to the
// outer sheet under the given category. An inner sheet whose taxable rows
// have no extracted tax yet is folded gross and kept taxable, so the order
// tax adapter still covers it.
func foldSheet(outer, inner *calculation.Sheet, category calculation.Category, adapterKey, positionID string) *calculation.Sheet {
	if inner == nil || inner.IsEmpty() {
		return outer
	}

	taxable := inner.Filter(func(r calculation.Row) bool { return r.IsTaxable })
	if len(taxable) > 0 && inner.TaxSum().Amount == 0 {
		row := calculation.Row{
			Category:     category,
			Amount:       inner.Gross().Amount,
			CurrencyCode: inner.Currency(),
			IsTaxable:    true,
			IsNetPrice:   taxable[0].IsNetPrice,
		}

		row = row.WithMeta(calculation.MetaAdapter, adapterKey)
		if positionID != "" {
			row = row.WithMeta(MetaPosition, positionID)
		}

		return outer.Add(row)
	}

	net := inner.Net()
	if net.Amount != 0 {
		row := calculation.Row{
			Category:     category,
			Amount:       net.Amount,
			CurrencyCode: inner.Currency(),
			IsNetPrice:   true,
		}

		row = row.WithMeta(calculation.MetaAdapter, adapterKey)
		if positionID != "" {
			row = row.WithMeta(MetaPosition, positionID)
		}

		outer = outer.Add(row)
	}

	tax := inner.TaxSum()
	if tax.Amount != 0 {
		row := calculation.Row{
			Category:     calculation.CategoryTax,
			Amount:       tax.Amount,
			CurrencyCode: inner.Currency(),
		}

		row = row.
			WithMeta(calculation.MetaBaseCategory, string(category)).
			WithMeta(calculation.MetaAdapter, adapterKey)
		if positionID != "" {
			row = row.WithMeta(MetaPosition, positionID)
		}

		outer = outer.Add(row)
	}

	return outer
}
