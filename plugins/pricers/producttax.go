package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// ProductTaxKey identifies the EU VAT adapter of the product surface.
const ProductTaxKey = "pricing.product-tax-eu"

// ProductTax extracts EU VAT from the taxable rows of a product pricing
// run. It runs last so discounts are already on the sheet.
type ProductTax struct{}

// NewProductTax creates the adapter.
func NewProductTax() *ProductTax { return &ProductTax{} }

func (a *ProductTax) Key() string     { return ProductTaxKey }
func (a *ProductTax) Label() string   { return "EU VAT (Products)" }
func (a *ProductTax) Version() string { return "1.0.0" }
func (a *ProductTax) OrderIndex() int { return 20 }

func (a *ProductTax) IsActivatedFor(c pricing.ProductPricingContext) bool {
	_, ok := VATRate(c.Country)

	return ok
}

func (a *ProductTax) Calculate(_ context.Context, c pricing.ProductPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	rate, ok := VATRate(c.Country)
	if !ok {
		return sheet, nil
	}

	return applyVAT(sheet, rate, a.Key()), nil
}
