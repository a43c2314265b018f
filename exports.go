package pricing

import (
	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/types"
)

// Re-exported core types so simple integrations only import the root
// package.
type (
	// Money is an amount in minor currency units with a currency code.
	Money = types.Money

	// Row is one immutable entry of a pricing sheet.
	Row = calculation.Row

	// Sheet is an ordered collection of rows bound to one currency.
	Sheet = calculation.Sheet

	// Category classifies a calculation row.
	Category = calculation.Category
)

// Re-exported row categories.
const (
	CategoryItem     = calculation.CategoryItem
	CategoryTax      = calculation.CategoryTax
	CategoryDiscount = calculation.CategoryDiscount
	CategoryDelivery = calculation.CategoryDelivery
	CategoryPayment  = calculation.CategoryPayment
	CategoryFee      = calculation.CategoryFee
)
