package mongo

import (
	"time"

	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/store"
	"github.com/unchainedshop/unchained-sub022/types"
)

// calculationDoc is the persisted form of a store.OrderCalculation. IDs are
// stored as their string form so documents stay readable in the shell.
type calculationDoc struct {
	OrderID      string            `bson:"_id"`
	CurrencyCode string            `bson:"currency_code"`
	Rows         []calculation.Row `bson:"rows"`
	CalculatedAt time.Time         `bson:"calculated_at"`
}

func newCalculationDoc(calc store.OrderCalculation) calculationDoc {
	return calculationDoc{
		OrderID:      calc.OrderID.String(),
		CurrencyCode: calc.CurrencyCode,
		Rows:         calc.Rows,
		CalculatedAt: calc.CalculatedAt,
	}
}

func (d calculationDoc) toRecord() (store.OrderCalculation, error) {
	orderID, err := id.Parse(d.OrderID)
	if err != nil {
		return store.OrderCalculation{}, err
	}

	return store.OrderCalculation{
		OrderID:      orderID,
		CurrencyCode: d.CurrencyCode,
		Rows:         d.Rows,
		CalculatedAt: d.CalculatedAt,
	}, nil
}

// discountDoc is the persisted form of a discount.Applied. Position keeps
// the attachment order stable across reads.
type discountDoc struct {
	ID           string    `bson:"_id"`
	OrderID      string    `bson:"order_id"`
	DiscountKey  string    `bson:"discount_key"`
	Trigger      string    `bson:"trigger"`
	Code         string    `bson:"code,omitempty"`
	TotalAmount  int64     `bson:"total_amount"`
	CurrencyCode string    `bson:"total_currency"`
	Position     int       `bson:"position"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newDiscountDoc(orderID id.ID, applied discount.Applied, position int) discountDoc {
	return discountDoc{
		ID:           applied.ID.String(),
		OrderID:      orderID.String(),
		DiscountKey:  applied.DiscountKey,
		Trigger:      string(applied.Trigger),
		Code:         applied.Code,
		TotalAmount:  applied.Total.Amount,
		CurrencyCode: applied.Total.Currency,
		Position:     position,
		CreatedAt:    applied.CreatedAt,
		UpdatedAt:    applied.UpdatedAt,
	}
}

func (d discountDoc) toApplied() (discount.Applied, error) {
	discountID, err := id.Parse(d.ID)
	if err != nil {
		return discount.Applied{}, err
	}

	orderID, err := id.Parse(d.OrderID)
	if err != nil {
		return discount.Applied{}, err
	}

	applied := discount.Applied{
		ID:          discountID,
		OrderID:     orderID,
		DiscountKey: d.DiscountKey,
		Trigger:     discount.Trigger(d.Trigger),
		Code:        d.Code,
		Total:       types.New(d.TotalAmount, d.CurrencyCode),
	}
	applied.CreatedAt = d.CreatedAt
	applied.UpdatedAt = d.UpdatedAt

	return applied, nil
}
