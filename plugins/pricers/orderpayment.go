package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// OrderPaymentKey identifies the payment folding adapter.
const OrderPaymentKey = "pricing.order-payment"

// OrderPayment folds the payment sheet into the order sheet.
type OrderPayment struct{}

// NewOrderPayment creates the adapter.
func NewOrderPayment() *OrderPayment { return &OrderPayment{} }

func (a *OrderPayment) Key() string     { return OrderPaymentKey }
func (a *OrderPayment) Label() string   { return "Order Payment" }
func (a *OrderPayment) Version() string { return "1.0.0" }
func (a *OrderPayment) OrderIndex() int { return 16 }

func (a *OrderPayment) IsActivatedFor(c pricing.OrderPricingContext) bool {
	return c.PaymentSheet != nil
}

func (a *OrderPayment) Calculate(_ context.Context, c pricing.OrderPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	return foldSheet(sheet, c.PaymentSheet, calculation.CategoryPayment, a.Key(), ""), nil
}
