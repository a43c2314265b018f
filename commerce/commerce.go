// Package commerce holds the commerce entities the pricing engine consumes:
// products with their catalog prices, orders with their positions, delivery
// and payment records, and users. The engine reads these, it never writes
// them.
package commerce

import (
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/types"
)

// ProductPrice is one catalog price entry of a product, scoped to a country
// and currency. MaxQuantity enables tiered pricing: an entry applies when
// the ordered quantity reaches it. MaxQuantity 0 marks the base price.
type ProductPrice struct {
	CountryCode  string `json:"countryCode" bson:"country_code"`
	CurrencyCode string `json:"currencyCode" bson:"currency_code"`
	Amount       int64  `json:"amount" bson:"amount"` // minor currency units
	IsTaxable    bool   `json:"isTaxable" bson:"is_taxable"`
	IsNetPrice   bool   `json:"isNetPrice" bson:"is_net_price"`
	MaxQuantity  int    `json:"maxQuantity,omitempty" bson:"max_quantity,omitempty"`
}

// Product is a catalog product with its price entries.
type Product struct {
	types.Entity `bson:",inline"`

	ID     id.ID          `json:"id" bson:"_id"`
	Prices []ProductPrice `json:"prices" bson:"prices"`
	Tags   []string       `json:"tags,omitempty" bson:"tags,omitempty"`
}

// PriceFor resolves the catalog price for a country, currency and quantity.
// Among the matching entries, the tier with the highest MaxQuantity not
// exceeding the quantity wins; without a matching tier the base price
// (MaxQuantity 0) applies. Returns false when the product has no price for
// the country and currency at all.
func (p Product) PriceFor(countryCode, currencyCode string, quantity int) (ProductPrice, bool) {
	var (
		base    ProductPrice
		hasBase bool
		best    ProductPrice
		hasTier bool
	)

	for _, entry := range p.Prices {
		if entry.CountryCode != countryCode || entry.CurrencyCode != currencyCode {
			continue
		}

		if entry.MaxQuantity == 0 {
			base = entry
			hasBase = true

			continue
		}

		if entry.MaxQuantity <= quantity && (!hasTier || entry.MaxQuantity > best.MaxQuantity) {
			best = entry
			hasTier = true
		}
	}

	if hasTier {
		return best, true
	}

	return base, hasBase
}

// Order is the priced aggregate root. CurrencyCode and CountryCode fix the
// pricing locale for every position of the order.
type Order struct {
	types.Entity `bson:",inline"`

	ID           id.ID  `json:"id" bson:"_id"`
	UserID       id.ID  `json:"userId" bson:"user_id"`
	CurrencyCode string `json:"currencyCode" bson:"currency_code"`
	CountryCode  string `json:"countryCode" bson:"country_code"`
}

// OrderPosition is one line of an order.
type OrderPosition struct {
	ID       id.ID   `json:"id" bson:"_id"`
	Product  Product `json:"product" bson:"product"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// OrderDelivery describes the delivery arrangement of an order, including
// the provider's flat fee.
type OrderDelivery struct {
	ID            id.ID  `json:"id" bson:"_id"`
	ProviderKey   string `json:"providerKey" bson:"provider_key"`
	Fee           int64  `json:"fee" bson:"fee"` // minor currency units
	FeeIsTaxable  bool   `json:"feeIsTaxable" bson:"fee_is_taxable"`
	FeeIsNetPrice bool   `json:"feeIsNetPrice" bson:"fee_is_net_price"`
}

// OrderPayment describes the payment arrangement of an order, including the
// provider's flat fee.
type OrderPayment struct {
	ID            id.ID  `json:"id" bson:"_id"`
	ProviderKey   string `json:"providerKey" bson:"provider_key"`
	Fee           int64  `json:"fee" bson:"fee"` // minor currency units
	FeeIsTaxable  bool   `json:"feeIsTaxable" bson:"fee_is_taxable"`
	FeeIsNetPrice bool   `json:"feeIsNetPrice" bson:"fee_is_net_price"`
}

// User is the ordering customer. Tags drive system-triggered discount
// eligibility.
type User struct {
	ID   id.ID    `json:"id" bson:"_id"`
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// HasTag reports whether the user carries the given tag.
func (u User) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}

	return false
}
