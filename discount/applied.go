package discount

import (
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/types"
)

// Trigger records how a discount got attached to an order.
type Trigger string

const (
	// TriggerSystem marks discounts the engine attached automatically.
	TriggerSystem Trigger = "SYSTEM"

	// TriggerCode marks discounts attached through a code entered by a
	// user.
	TriggerCode Trigger = "CODE"
)

// Applied is a discount attached to an order. Total is filled in after a
// recalculation with the discount's full gross effect on the order.
type Applied struct {
	types.Entity `bson:",inline"`

	ID          id.ID       `json:"id" bson:"_id"`
	OrderID     id.ID       `json:"orderId" bson:"order_id"`
	DiscountKey string      `json:"discountKey" bson:"discount_key"`
	Trigger     Trigger     `json:"trigger" bson:"trigger"`
	Code        string      `json:"code,omitempty" bson:"code,omitempty"`
	Total       types.Money `json:"total" bson:"total"`
}

// Resolved pairs an applied discount with its adapter for a pricing run.
type Resolved struct {
	Applied
	Adapter Adapter
}

// ConfigurationFor returns the discount parameters for a pricing adapter.
// It tolerates a missing or panicking adapter by treating the discount as
// not affecting that adapter.
func (r Resolved) ConfigurationFor(pricingAdapterKey string) (cfg *Configuration) {
	if r.Adapter == nil {
		return nil
	}

	defer func() {
		if recover() != nil {
			cfg = nil
		}
	}()

	return r.Adapter.ConfigurationFor(pricingAdapterKey)
}
