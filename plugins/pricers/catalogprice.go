package pricers

import (
	"context"
	"fmt"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// CatalogPriceKey identifies the catalog price adapter.
const CatalogPriceKey = "pricing.product-catalog"

// CatalogPrice resolves the product's catalog price for the run's locale
// and quantity and emits the base item row. It runs first; every other
// product adapter builds on its row.
type CatalogPrice struct{}

// NewCatalogPrice creates the adapter.
func NewCatalogPrice() *CatalogPrice { return &CatalogPrice{} }

func (a *CatalogPrice) Key() string     { return CatalogPriceKey }
func (a *CatalogPrice) Label() string   { return "Catalog Price" }
func (a *CatalogPrice) Version() string { return "1.0.0" }
func (a *CatalogPrice) OrderIndex() int { return 0 }

func (a *CatalogPrice) IsActivatedFor(_ pricing.ProductPricingContext) bool { return true }

func (a *CatalogPrice) Calculate(_ context.Context, c pricing.ProductPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	price, ok := c.Product.PriceFor(c.Country, c.Currency, c.Quantity)
	if !ok {
		return nil, fmt.Errorf("product %s (%s/%s): %w", c.Product.ID, c.Country, c.Currency, pricing.ErrNoProductPrice)
	}

	row := calculation.Row{
		Category:     calculation.CategoryItem,
		Amount:       price.Amount * int64(c.Quantity),
		CurrencyCode: c.Currency,
		IsTaxable:    price.IsTaxable,
		IsNetPrice:   price.IsNetPrice,
	}

	return sheet.Add(row.WithMeta(calculation.MetaAdapter, a.Key())), nil
}
