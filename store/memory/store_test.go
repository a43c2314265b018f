package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/store"
	"github.com/unchainedshop/unchained-sub022/types"
)

func TestOrderCalculationRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()
	orderID := id.NewOrderID()

	if _, err := s.OrderCalculation(ctx, orderID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	calc := store.OrderCalculation{
		OrderID:      orderID,
		CurrencyCode: "EUR",
		Rows: []calculation.Row{
			{Category: calculation.CategoryItem, Amount: 16807, CurrencyCode: "EUR", IsNetPrice: true},
			{Category: calculation.CategoryTax, Amount: 3193, CurrencyCode: "EUR"},
		},
		CalculatedAt: time.Now().UTC(),
	}
	if err := s.SaveOrderCalculation(ctx, calc); err != nil {
		t.Fatal(err)
	}

	got, err := s.OrderCalculation(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 2 || got.CurrencyCode != "EUR" {
		t.Errorf("unexpected record: %+v", got)
	}

	// Mutating the returned rows must not affect the stored record.
	got.Rows[0].Amount = 0
	again, err := s.OrderCalculation(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Rows[0].Amount != 16807 {
		t.Error("stored rows were mutated through a read copy")
	}
}

func TestSaveReplacesCalculation(t *testing.T) {
	s := New()
	ctx := context.Background()
	orderID := id.NewOrderID()

	first := store.OrderCalculation{OrderID: orderID, CurrencyCode: "EUR", Rows: []calculation.Row{
		{Category: calculation.CategoryItem, Amount: 100, CurrencyCode: "EUR"},
	}}
	second := store.OrderCalculation{OrderID: orderID, CurrencyCode: "EUR", Rows: []calculation.Row{
		{Category: calculation.CategoryItem, Amount: 200, CurrencyCode: "EUR"},
	}}

	if err := s.SaveOrderCalculation(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveOrderCalculation(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.OrderCalculation(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 1 || got.Rows[0].Amount != 200 {
		t.Errorf("expected replacement, got %+v", got.Rows)
	}
}

func TestAppliedDiscounts(t *testing.T) {
	s := New()
	ctx := context.Background()
	orderID := id.NewOrderID()

	list, err := s.AppliedDiscounts(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected no discounts, got %d", len(list))
	}

	applied := []discount.Applied{
		{ID: id.NewDiscountID(), OrderID: orderID, DiscountKey: "discount.hundred-off", Trigger: discount.TriggerCode, Code: "100OFF", Total: types.EUR(-10000)},
	}
	if err := s.SaveAppliedDiscounts(ctx, orderID, applied); err != nil {
		t.Fatal(err)
	}

	list, err = s.AppliedDiscounts(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Code != "100OFF" {
		t.Errorf("unexpected discounts: %+v", list)
	}

	if err := s.SaveAppliedDiscounts(ctx, orderID, nil); err != nil {
		t.Fatal(err)
	}
	list, err = s.AppliedDiscounts(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected discounts cleared, got %+v", list)
	}
}

func TestLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
}
