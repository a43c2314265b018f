// Package discounts contains the reference discount adapters.
package discounts

import (
	"context"
	"strings"

	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/plugins/pricers"
)

// HundredOffKey identifies the fixed-amount voucher adapter.
const HundredOffKey = "discount.hundred-off"

// hundredOffCode activates the discount, matched case-insensitively.
const hundredOffCode = "100OFF"

// HundredOff is a voucher worth 100.00 in the order's currency. It is
// attached and removed manually via its code and realized by the
// order-level discount adapter.
type HundredOff struct{}

// NewHundredOff creates the adapter.
func NewHundredOff() *HundredOff { return &HundredOff{} }

func (a *HundredOff) Key() string     { return HundredOffKey }
func (a *HundredOff) Label() string   { return "100 Off Voucher" }
func (a *HundredOff) Version() string { return "1.0.0" }
func (a *HundredOff) OrderIndex() int { return 10 }

func (a *HundredOff) IsManualAdditionAllowed(code string) bool {
	return strings.EqualFold(code, hundredOffCode)
}

func (a *HundredOff) IsManualRemovalAllowed() bool { return true }

func (a *HundredOff) IsValidForSystemTriggering(_ context.Context, _ discount.Context) (bool, error) {
	return false, nil
}

func (a *HundredOff) IsValidForCodeTriggering(_ context.Context, _ discount.Context, code string) (bool, error) {
	return strings.EqualFold(code, hundredOffCode), nil
}

func (a *HundredOff) ConfigurationFor(pricingAdapterKey string) *discount.Configuration {
	if pricingAdapterKey != pricers.OrderDiscountKey {
		return nil
	}

	return &discount.Configuration{FixedRate: 10000}
}
