package director

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unchainedshop/unchained-sub022/calculation"
)

type testContext struct {
	currency string
	active   map[string]bool
}

func (c testContext) CurrencyCode() string { return c.currency }

type stubAdapter struct {
	key        string
	orderIndex int
	amount     int64
	err        error
	cfgErr     error
	hasCfg     bool
}

func (a *stubAdapter) Key() string     { return a.key }
func (a *stubAdapter) Label() string   { return a.key }
func (a *stubAdapter) Version() string { return "1.0.0" }
func (a *stubAdapter) OrderIndex() int { return a.orderIndex }

func (a *stubAdapter) IsActivatedFor(c testContext) bool {
	if c.active == nil {
		return true
	}

	return c.active[a.key]
}

func (a *stubAdapter) Calculate(_ context.Context, c testContext, sheet *calculation.Sheet) (*calculation.Sheet, error) {
	if a.err != nil {
		return nil, a.err
	}

	row := calculation.Row{
		Category:     calculation.CategoryItem,
		Amount:       a.amount,
		CurrencyCode: c.currency,
	}

	return sheet.Add(row.WithMeta(calculation.MetaAdapter, a.key)), nil
}

type configurableStub struct {
	stubAdapter
}

func (a *configurableStub) ConfigurationError() error { return a.cfgErr }

func adapterOrder(t *testing.T, sheet *calculation.Sheet) []string {
	t.Helper()

	var keys []string
	for _, r := range sheet.Rows() {
		keys = append(keys, r.AdapterKey())
	}

	return keys
}

func TestDirectorExecutionOrder(t *testing.T) {
	d := New[testContext](nil)
	d.Register(&stubAdapter{key: "b", orderIndex: 10, amount: 2})
	d.Register(&stubAdapter{key: "c", orderIndex: 10, amount: 3})
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 1})

	sheet, err := d.RebuildCalculation(context.Background(), testContext{currency: "EUR"})
	require.NoError(t, err)

	// Lower index first, equal indexes in registration order.
	assert.Equal(t, []string{"a", "b", "c"}, adapterOrder(t, sheet))
	assert.Equal(t, int64(6), sheet.Gross().Amount)
}

func TestDirectorDeterminism(t *testing.T) {
	d := New[testContext](nil)
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 100})
	d.Register(&stubAdapter{key: "b", orderIndex: 5, amount: 200})

	c := testContext{currency: "CHF"}

	first, err := d.RebuildCalculation(context.Background(), c)
	require.NoError(t, err)
	second, err := d.RebuildCalculation(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, first.Rows(), second.Rows())
}

func TestDirectorRegisterReplacesByKey(t *testing.T) {
	d := New[testContext](nil)
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 1})
	d.Register(&stubAdapter{key: "b", orderIndex: 0, amount: 2})
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 10})

	assert.Equal(t, 2, d.Registry().Len())

	sheet, err := d.RebuildCalculation(context.Background(), testContext{currency: "EUR"})
	require.NoError(t, err)

	// Replacement keeps the original registration position.
	assert.Equal(t, []string{"a", "b"}, adapterOrder(t, sheet))
	assert.Equal(t, int64(12), sheet.Gross().Amount)
}

func TestDirectorRegisterRejectsEmptyKey(t *testing.T) {
	d := New[testContext](nil)
	d.Register(&stubAdapter{key: "", orderIndex: 0, amount: 99})
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 1})

	assert.Equal(t, 1, d.Registry().Len())
	_, ok := d.Registry().Get("")
	assert.False(t, ok)

	sheet, err := d.RebuildCalculation(context.Background(), testContext{currency: "EUR"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, adapterOrder(t, sheet))
	assert.Equal(t, int64(1), sheet.Gross().Amount)
}

func TestDirectorInactiveAdaptersSkipped(t *testing.T) {
	d := New[testContext](nil)
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 1})
	d.Register(&stubAdapter{key: "b", orderIndex: 1, amount: 2})

	c := testContext{currency: "EUR", active: map[string]bool{"b": true}}

	sheet, err := d.RebuildCalculation(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, adapterOrder(t, sheet))
}

func TestDirectorAdapterErrorAborts(t *testing.T) {
	boom := errors.New("upstream unavailable")

	d := New[testContext](nil)
	d.Register(&stubAdapter{key: "a", orderIndex: 0, amount: 1})
	d.Register(&stubAdapter{key: "fail", orderIndex: 5, err: boom})
	d.Register(&stubAdapter{key: "z", orderIndex: 10, amount: 100})

	sheet, err := d.RebuildCalculation(context.Background(), testContext{currency: "EUR"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fail")
	assert.Nil(t, sheet)
}

func TestDirectorMisconfiguredAdapterSkipped(t *testing.T) {
	d := New[testContext](nil)
	d.Register(&configurableStub{stubAdapter{key: "a", orderIndex: 0, amount: 1, cfgErr: errors.New("precision missing")}})
	d.Register(&stubAdapter{key: "b", orderIndex: 1, amount: 2})

	sheet, err := d.RebuildCalculation(context.Background(), testContext{currency: "EUR"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, adapterOrder(t, sheet))
}

func TestDirectorCalculationSheet(t *testing.T) {
	d := New[testContext](nil)

	rows := []calculation.Row{
		{Category: calculation.CategoryItem, Amount: 500, CurrencyCode: "EUR"},
	}
	sheet := d.CalculationSheet(testContext{currency: "EUR"}, rows)

	assert.Equal(t, int64(500), sheet.Gross().Amount)
	assert.Equal(t, 1, sheet.Len())
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry[testContext](nil)
	r.Register(&stubAdapter{key: "a"})

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.Key())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}
