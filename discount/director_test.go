package discount

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unchainedshop/unchained-sub022/commerce"
	"github.com/unchainedshop/unchained-sub022/id"
)

type fakeAdapter struct {
	key           string
	orderIndex    int
	code          string
	systemOK      bool
	systemErr     error
	systemPanics  bool
	removable     bool
	configuration map[string]*Configuration
}

func (a *fakeAdapter) Key() string     { return a.key }
func (a *fakeAdapter) Label() string   { return a.key }
func (a *fakeAdapter) Version() string { return "1.0.0" }
func (a *fakeAdapter) OrderIndex() int { return a.orderIndex }

func (a *fakeAdapter) IsManualAdditionAllowed(code string) bool {
	return a.code != "" && strings.EqualFold(code, a.code)
}

func (a *fakeAdapter) IsManualRemovalAllowed() bool { return a.removable }

func (a *fakeAdapter) IsValidForSystemTriggering(_ context.Context, _ Context) (bool, error) {
	if a.systemPanics {
		panic("predicate exploded")
	}

	return a.systemOK, a.systemErr
}

func (a *fakeAdapter) IsValidForCodeTriggering(_ context.Context, _ Context, code string) (bool, error) {
	return a.code != "" && strings.EqualFold(code, a.code), nil
}

func (a *fakeAdapter) ConfigurationFor(key string) *Configuration {
	return a.configuration[key]
}

func quietDirector() *Director {
	return NewDirector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func orderContext() Context {
	return Context{
		Order: commerce.Order{ID: id.NewOrderID(), CurrencyCode: "EUR", CountryCode: "DE"},
		User:  commerce.User{ID: id.NewUserID()},
	}
}

func TestResolveByCode(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "discount.a", code: "SAVE10"})
	d.RegisterAdapter(&fakeAdapter{key: "discount.b", code: "SAVE20"})

	c := orderContext()

	applied, err := d.ResolveByCode(context.Background(), c, "save20")
	require.NoError(t, err)
	assert.Equal(t, "discount.b", applied.DiscountKey)
	assert.Equal(t, TriggerCode, applied.Trigger)
	assert.Equal(t, "SAVE20", applied.Code)
	assert.Equal(t, c.Order.ID, applied.OrderID)
	assert.False(t, applied.ID.IsNil())

	_, err = d.ResolveByCode(context.Background(), c, "UNKNOWN")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestRegisterAdapterRejectsEmptyKey(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "", systemOK: true})
	d.RegisterAdapter(&fakeAdapter{key: "discount.auto", systemOK: true})

	_, ok := d.Adapter("")
	assert.False(t, ok)

	found := d.FindSystemDiscounts(context.Background(), orderContext())

	require.Len(t, found, 1)
	assert.Equal(t, "discount.auto", found[0].DiscountKey)
}

func TestFindSystemDiscounts(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "discount.auto", systemOK: true})
	d.RegisterAdapter(&fakeAdapter{key: "discount.never"})
	d.RegisterAdapter(&fakeAdapter{key: "discount.code-only", code: "X"})

	found := d.FindSystemDiscounts(context.Background(), orderContext())

	require.Len(t, found, 1)
	assert.Equal(t, "discount.auto", found[0].DiscountKey)
	assert.Equal(t, TriggerSystem, found[0].Trigger)
}

func TestPredicatesFailClosed(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "discount.errors", systemOK: true, systemErr: errors.New("backend down")})
	d.RegisterAdapter(&fakeAdapter{key: "discount.panics", systemPanics: true})
	d.RegisterAdapter(&fakeAdapter{key: "discount.fine", systemOK: true})

	found := d.FindSystemDiscounts(context.Background(), orderContext())

	require.Len(t, found, 1)
	assert.Equal(t, "discount.fine", found[0].DiscountKey)
}

func TestReconcile(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "discount.auto", systemOK: true})
	d.RegisterAdapter(&fakeAdapter{key: "discount.coded", code: "SAVE10"})

	c := orderContext()

	valid, err := d.ResolveByCode(context.Background(), c, "SAVE10")
	require.NoError(t, err)

	stale := Applied{
		ID:          id.NewDiscountID(),
		OrderID:     c.Order.ID,
		DiscountKey: "discount.coded",
		Trigger:     TriggerCode,
		Code:        "EXPIRED",
	}
	orphan := Applied{
		ID:          id.NewDiscountID(),
		OrderID:     c.Order.ID,
		DiscountKey: "discount.gone",
		Trigger:     TriggerCode,
		Code:        "SAVE10",
	}

	kept := d.Reconcile(context.Background(), c, []Applied{valid, stale, orphan})

	require.Len(t, kept, 2)
	assert.Equal(t, valid.ID, kept[0].ID)
	assert.Equal(t, "discount.auto", kept[1].DiscountKey)
	assert.Equal(t, TriggerSystem, kept[1].Trigger)
}

func TestReconcileDoesNotDuplicateSystemDiscounts(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "discount.auto", systemOK: true})

	c := orderContext()
	existing := d.FindSystemDiscounts(context.Background(), c)
	require.Len(t, existing, 1)

	kept := d.Reconcile(context.Background(), c, existing)

	require.Len(t, kept, 1)
	assert.Equal(t, existing[0].ID, kept[0].ID)
}

func TestResolveSkipsUnregistered(t *testing.T) {
	d := quietDirector()
	adapter := &fakeAdapter{
		key:           "discount.a",
		configuration: map[string]*Configuration{"pricing.order-discount": {FixedRate: 10000}},
	}
	d.RegisterAdapter(adapter)

	applied := []Applied{
		{ID: id.NewDiscountID(), DiscountKey: "discount.a"},
		{ID: id.NewDiscountID(), DiscountKey: "discount.gone"},
	}

	resolved := d.Resolve(applied)

	require.Len(t, resolved, 1)
	cfg := resolved[0].ConfigurationFor("pricing.order-discount")
	require.NotNil(t, cfg)
	assert.Equal(t, int64(10000), cfg.FixedRate)
	assert.Nil(t, resolved[0].ConfigurationFor("pricing.product-discount"))
}

func TestResolvedConfigurationForNilAdapter(t *testing.T) {
	r := Resolved{Applied: Applied{DiscountKey: "discount.x"}}
	assert.Nil(t, r.ConfigurationFor("pricing.order-discount"))
}

func TestManualRemovalAllowed(t *testing.T) {
	d := quietDirector()
	d.RegisterAdapter(&fakeAdapter{key: "discount.removable", removable: true})
	d.RegisterAdapter(&fakeAdapter{key: "discount.locked"})

	assert.True(t, d.ManualRemovalAllowed(Applied{DiscountKey: "discount.removable"}))
	assert.False(t, d.ManualRemovalAllowed(Applied{DiscountKey: "discount.locked"}))
	assert.False(t, d.ManualRemovalAllowed(Applied{DiscountKey: "discount.gone"}))
}
