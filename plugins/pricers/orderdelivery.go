package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// OrderDeliveryKey identifies the delivery folding adapter.
const OrderDeliveryKey = "pricing.order-delivery"

// OrderDelivery folds the delivery sheet into the order sheet. It runs
// after the order discounts so discounts never eat into delivery fees.
type OrderDelivery struct{}

// NewOrderDelivery creates the adapter.
func NewOrderDelivery() *OrderDelivery { return &OrderDelivery{} }

func (a *OrderDelivery) Key() string     { return OrderDeliveryKey }
func (a *OrderDelivery) Label() string   { return "Order Delivery" }
func (a *OrderDelivery) Version() string { return "1.0.0" }
func (a *OrderDelivery) OrderIndex() int { return 15 }

func (a *OrderDelivery) IsActivatedFor(c pricing.OrderPricingContext) bool {
	return c.DeliverySheet != nil
}

func (a *OrderDelivery) Calculate(_ context.Context, c pricing.OrderPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	return foldSheet(sheet, c.DeliverySheet, calculation.CategoryDelivery, a.Key(), ""), nil
}
