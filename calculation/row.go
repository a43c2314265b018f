// Package calculation defines the calculation row, the atomic immutable
// unit of a pricing ledger, and the pricing sheet that aggregates rows.
package calculation

// Category classifies a calculation row. The set is closed; it is never
// extended at runtime.
type Category string

// Row categories.
const (
	CategoryItem     Category = "ITEM"
	CategoryTax      Category = "TAX"
	CategoryDiscount Category = "DISCOUNT"
	CategoryDelivery Category = "DELIVERY"
	CategoryPayment  Category = "PAYMENT"
	CategoryFee      Category = "FEE"
)

// Well-known meta keys.
const (
	// MetaAdapter carries the key of the pricing adapter that produced the
	// row. Every row has it.
	MetaAdapter = "adapter"

	// MetaBaseCategory, on Tax rows, names the category the tax derives
	// from so category-scoped gross/net queries can attribute it.
	MetaBaseCategory = "baseCategory"
)

// Row is one immutable entry of a pricing ledger. Corrections are expressed
// by additional negative-amount rows, never by mutating an existing row.
type Row struct {
	Category     Category       `json:"category" bson:"category"`
	Amount       int64          `json:"amount" bson:"amount"` // minor currency units, signed
	CurrencyCode string         `json:"currencyCode" bson:"currency_code"`
	IsTaxable    bool           `json:"isTaxable" bson:"is_taxable"`
	IsNetPrice   bool           `json:"isNetPrice" bson:"is_net_price"`
	DiscountID   string         `json:"discountId,omitempty" bson:"discount_id,omitempty"`
	Rate         float64        `json:"rate,omitempty" bson:"rate,omitempty"`
	Meta         map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// WithMeta returns a copy of the row with the given meta entry set. The
// original row's meta map is never modified.
func (r Row) WithMeta(key string, value any) Row {
	meta := make(map[string]any, len(r.Meta)+1)
	for k, v := range r.Meta {
		meta[k] = v
	}
	meta[key] = value
	r.Meta = meta
	return r
}

// AdapterKey returns the key of the adapter that produced the row, or "".
func (r Row) AdapterKey() string {
	if s, ok := r.Meta[MetaAdapter].(string); ok {
		return s
	}
	return ""
}

// BaseCategory returns the category a Tax row derives from, or "".
func (r Row) BaseCategory() Category {
	if s, ok := r.Meta[MetaBaseCategory].(string); ok {
		return Category(s)
	}
	return ""
}
