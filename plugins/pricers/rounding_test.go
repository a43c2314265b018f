package pricers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/calculation"
)

func TestRoundToNext(t *testing.T) {
	tests := []struct {
		amount    int64
		precision int64
		want      int64
	}{
		{125, 50, 150},
		{120, 50, 150},
		{100, 50, 100},
		{1, 50, 50},
		{0, 50, 0},
		{-125, 50, -150},
		{-100, 50, -100},
		{99, 10, 100},
		{125, 0, 125},
	}

	for _, tt := range tests {
		got := roundToNext(tt.amount, tt.precision)
		assert.Equal(t, tt.want, got, "roundToNext(%d, %d)", tt.amount, tt.precision)
	}
}

func TestProductRoundCalculate(t *testing.T) {
	sheet := calculation.NewSheet("CHF",
		calculation.Row{Category: calculation.CategoryItem, Amount: 125, CurrencyCode: "CHF", IsTaxable: true},
		calculation.Row{Category: calculation.CategoryItem, Amount: 100, CurrencyCode: "CHF", IsTaxable: true},
	)

	adapter := NewProductRound(50)
	require.NoError(t, adapter.ConfigurationError())

	out, err := adapter.Calculate(context.Background(), pricing.ProductPricingContext{Currency: "CHF"}, sheet)
	require.NoError(t, err)

	rows := out.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(150), rows[0].Amount)
	assert.Equal(t, int64(100), rows[1].Amount)
	assert.True(t, rows[0].IsTaxable)
}

func TestProductRoundConfigurationError(t *testing.T) {
	assert.Error(t, NewProductRound(0).ConfigurationError())
	assert.Error(t, NewProductRound(-5).ConfigurationError())
	assert.NoError(t, NewProductRound(5).ConfigurationError())
}
