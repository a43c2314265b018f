// Package plugins wires the reference adapter set into a pricing engine.
package plugins

import (
	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/plugins/discounts"
	"github.com/unchainedshop/unchained-sub022/plugins/pricers"
)

// RegisterDefaults registers the reference adapters on all pricing
// surfaces of the engine. The price rounding adapter is left out; hosts
// whose market requires cash rounding register it themselves with a
// precision:
//
//	engine.Products().Register(pricers.NewProductRound(5))
func RegisterDefaults(engine *pricing.Engine) {
	engine.Products().Register(pricers.NewCatalogPrice())
	engine.Products().Register(pricers.NewProductDiscount())
	engine.Products().Register(pricers.NewProductTax())

	engine.Orders().Register(pricers.NewOrderItems())
	engine.Orders().Register(pricers.NewOrderDiscount())
	engine.Orders().Register(pricers.NewOrderDelivery())
	engine.Orders().Register(pricers.NewOrderPayment())
	engine.Orders().Register(pricers.NewOrderTax())

	engine.Deliveries().Register(pricers.NewDeliveryFee())
	engine.Payments().Register(pricers.NewPaymentFee())

	engine.Discounts().RegisterAdapter(discounts.NewHundredOff())
	engine.Discounts().RegisterAdapter(discounts.NewHalfPrice())
}
