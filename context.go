package pricing

import (
	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/commerce"
	"github.com/unchainedshop/unchained-sub022/discount"
)

// ProductPricingContext is the input of a product pricing run: one product
// in one quantity, priced for a locale, with the order's resolved discounts
// available to the pricing adapters.
type ProductPricingContext struct {
	Product   commerce.Product
	Quantity  int
	Currency  string
	Country   string
	User      commerce.User
	Discounts []discount.Resolved
}

// CurrencyCode returns the currency the run is denominated in.
func (c ProductPricingContext) CurrencyCode() string { return c.Currency }

// PricedPosition is an order position together with its finished product
// pricing sheet.
type PricedPosition struct {
	Position commerce.OrderPosition
	Sheet    *calculation.Sheet
}

// OrderPricingContext is the input of the order-level pricing run. The
// positions, delivery and payment carry their already-computed sheets; the
// order adapters fold and extend them.
type OrderPricingContext struct {
	Order         commerce.Order
	User          commerce.User
	Positions     []PricedPosition
	Delivery      *commerce.OrderDelivery
	DeliverySheet *calculation.Sheet
	Payment       *commerce.OrderPayment
	PaymentSheet  *calculation.Sheet
	Discounts     []discount.Resolved
}

// CurrencyCode returns the order's currency.
func (c OrderPricingContext) CurrencyCode() string { return c.Order.CurrencyCode }

// DeliveryPricingContext is the input of a delivery fee pricing run.
type DeliveryPricingContext struct {
	Order     commerce.Order
	User      commerce.User
	Delivery  commerce.OrderDelivery
	Discounts []discount.Resolved
}

// CurrencyCode returns the order's currency.
func (c DeliveryPricingContext) CurrencyCode() string { return c.Order.CurrencyCode }

// PaymentPricingContext is the input of a payment fee pricing run.
type PaymentPricingContext struct {
	Order     commerce.Order
	User      commerce.User
	Payment   commerce.OrderPayment
	Discounts []discount.Resolved
}

// CurrencyCode returns the order's currency.
func (c PaymentPricingContext) CurrencyCode() string { return c.Order.CurrencyCode }
