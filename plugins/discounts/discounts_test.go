package discounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unchainedshop/unchained-sub022/commerce"
	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/plugins/pricers"
)

func TestHundredOff(t *testing.T) {
	a := NewHundredOff()

	assert.True(t, a.IsManualAdditionAllowed("100OFF"))
	assert.True(t, a.IsManualAdditionAllowed("100off"))
	assert.False(t, a.IsManualAdditionAllowed("SAVE10"))
	assert.True(t, a.IsManualRemovalAllowed())

	ok, err := a.IsValidForCodeTriggering(context.Background(), discount.Context{}, "100OFF")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.IsValidForSystemTriggering(context.Background(), discount.Context{})
	require.NoError(t, err)
	assert.False(t, ok)

	cfg := a.ConfigurationFor(pricers.OrderDiscountKey)
	require.NotNil(t, cfg)
	assert.Equal(t, int64(10000), cfg.FixedRate)
	assert.Nil(t, a.ConfigurationFor(pricers.ProductDiscountKey))
}

func TestHalfPrice(t *testing.T) {
	a := NewHalfPrice()

	assert.False(t, a.IsManualAdditionAllowed("HALF"))
	assert.False(t, a.IsManualRemovalAllowed())

	tagged := discount.Context{User: commerce.User{Tags: []string{"half-price"}}}
	ok, err := a.IsValidForSystemTriggering(context.Background(), tagged)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.IsValidForSystemTriggering(context.Background(), discount.Context{})
	require.NoError(t, err)
	assert.False(t, ok)

	cfg := a.ConfigurationFor(pricers.ProductDiscountKey)
	require.NotNil(t, cfg)
	assert.Equal(t, 0.5, cfg.Rate)
	assert.Nil(t, a.ConfigurationFor(pricers.OrderDiscountKey))
}
