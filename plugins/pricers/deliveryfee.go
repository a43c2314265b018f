package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// DeliveryFeeKey identifies the flat delivery fee adapter.
const DeliveryFeeKey = "pricing.delivery-fee"

// DeliveryFee emits the delivery provider's flat fee on the delivery
// sheet.
type DeliveryFee struct{}

// NewDeliveryFee creates the adapter.
func NewDeliveryFee() *DeliveryFee { return &DeliveryFee{} }

func (a *DeliveryFee) Key() string     { return DeliveryFeeKey }
func (a *DeliveryFee) Label() string   { return "Delivery Fee" }
func (a *DeliveryFee) Version() string { return "1.0.0" }
func (a *DeliveryFee) OrderIndex() int { return 0 }

func (a *DeliveryFee) IsActivatedFor(c pricing.DeliveryPricingContext) bool {
	return c.Delivery.Fee != 0
}

func (a *DeliveryFee) Calculate(_ context.Context, c pricing.DeliveryPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	row := calculation.Row{
		Category:     calculation.CategoryDelivery,
		Amount:       c.Delivery.Fee,
		CurrencyCode: c.Order.CurrencyCode,
		IsTaxable:    c.Delivery.FeeIsTaxable,
		IsNetPrice:   c.Delivery.FeeIsNetPrice,
	}

	return sheet.Add(row.WithMeta(calculation.MetaAdapter, a.Key())), nil
}
