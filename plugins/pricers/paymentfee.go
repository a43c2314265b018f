package pricers

import (
	"context"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

// PaymentFeeKey identifies the flat payment fee adapter.
const PaymentFeeKey = "pricing.payment-fee"

// PaymentFee emits the payment provider's flat fee on the payment sheet.
type PaymentFee struct{}

// NewPaymentFee creates the adapter.
func NewPaymentFee() *PaymentFee { return &PaymentFee{} }

func (a *PaymentFee) Key() string     { return PaymentFeeKey }
func (a *PaymentFee) Label() string   { return "Payment Fee" }
func (a *PaymentFee) Version() string { return "1.0.0" }
func (a *PaymentFee) OrderIndex() int { return 0 }

func (a *PaymentFee) IsActivatedFor(c pricing.PaymentPricingContext) bool {
	return c.Payment.Fee != 0
}

func (a *PaymentFee) Calculate(_ context.Context, c pricing.PaymentPricingContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	row := calculation.Row{
		Category:     calculation.CategoryPayment,
		Amount:       c.Payment.Fee,
		CurrencyCode: c.Order.CurrencyCode,
		IsTaxable:    c.Payment.FeeIsTaxable,
		IsNetPrice:   c.Payment.FeeIsNetPrice,
	}

	return sheet.Add(row.WithMeta(calculation.MetaAdapter, a.Key())), nil
}
