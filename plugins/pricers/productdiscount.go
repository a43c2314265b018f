package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// ProductDiscountKey identifies the proportional product discount adapter.
// Discount adapters parameterize it with a Rate configuration.
const ProductDiscountKey = "pricing.product-discount"

// ProductDiscount applies rate-based discounts to the item total of a
// product pricing run. The discount row mirrors the taxability of the item
// rows it reduces, so tax extraction treats both alike.
type ProductDiscount struct{}

// NewProductDiscount creates the adapter.
func NewProductDiscount() *ProductDiscount { return &ProductDiscount{} }

func (a *ProductDiscount) Key() string     { return ProductDiscountKey }
func (a *ProductDiscount) Label() string   { return "Product Discount" }
func (a *ProductDiscount) Version() string { return "1.0.0" }
func (a *ProductDiscount) OrderIndex() int { return 10 }

func (a *ProductDiscount) IsActivatedFor(c pricing.ProductPricingContext) bool {
	return len(c.Discounts) > 0
}

func (a *ProductDiscount) Calculate(_ context.Context, c pricing.ProductPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	itemRows := sheet.Filter(func(r calculation.Row) bool {
		return r.Category == calculation.CategoryItem
	})
	if len(itemRows) == 0 {
		return sheet, nil
	}

	itemTotal := sheet.Gross(calculation.CategoryItem).Amount

	for _, d := range c.Discounts {
		cfg := d.ConfigurationFor(a.Key())
		if cfg == nil || cfg.Rate == 0 {
			continue
		}

		amount := -roundHalfAway(float64(itemTotal) * cfg.Rate)
		if amount == 0 {
			continue
		}

		row := calculation.Row{
			Category:     calculation.CategoryDiscount,
			Amount:       amount,
			CurrencyCode: sheet.Currency(),
			IsTaxable:    itemRows[0].IsTaxable,
			IsNetPrice:   itemRows[0].IsNetPrice,
			DiscountID:   d.ID.String(),
			Rate:         cfg.Rate,
		}

		sheet = sheet.Add(row.WithMeta(calculation.MetaAdapter, a.Key()))
	}

	return sheet, nil
}
