package discounts

import (
	"context"

	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/plugins/pricers"
)

// HalfPriceKey identifies the tag-based half price adapter.
const HalfPriceKey = "discount.half-price"

// halfPriceTag marks users eligible for half price.
const halfPriceTag = "half-price"

// HalfPrice halves item prices for users tagged accordingly. It is
// attached by the system, never by code, and realized by the product-level
// discount adapter.
type HalfPrice struct{}

// NewHalfPrice creates the adapter.
func NewHalfPrice() *HalfPrice { return &HalfPrice{} }

func (a *HalfPrice) Key() string     { return HalfPriceKey }
func (a *HalfPrice) Label() string   { return "Half Price" }
func (a *HalfPrice) Version() string { return "1.0.0" }
func (a *HalfPrice) OrderIndex() int { return 20 }

func (a *HalfPrice) IsManualAdditionAllowed(_ string) bool { return false }

func (a *HalfPrice) IsManualRemovalAllowed() bool { return false }

func (a *HalfPrice) IsValidForSystemTriggering(_ context.Context, c discount.Context) (bool, error) {
	return c.User.HasTag(halfPriceTag), nil
}

func (a *HalfPrice) IsValidForCodeTriggering(_ context.Context, _ discount.Context, _ string) (bool, error) {
	return false, nil
}

func (a *HalfPrice) ConfigurationFor(pricingAdapterKey string) *discount.Configuration {
	if pricingAdapterKey != pricers.ProductDiscountKey {
		return nil
	}

	return &discount.Configuration{Rate: 0.5}
}
