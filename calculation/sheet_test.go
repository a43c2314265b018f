package calculation

import (
	"testing"

	"github.com/unchainedshop/unchained-sub022/types"
)

func itemRow(amount int64) Row {
	return Row{Category: CategoryItem, Amount: amount, CurrencyCode: "EUR", IsTaxable: true}
}

func taxRow(amount int64, base Category) Row {
	r := Row{Category: CategoryTax, Amount: amount, CurrencyCode: "EUR"}
	return r.WithMeta(MetaBaseCategory, string(base))
}

// A normalized sheet the way a tax adapter leaves it: a gross item row, its
// net correction, and the explicit tax row.
func normalizedSheet() *Sheet {
	return NewSheet("EUR",
		itemRow(20000),
		Row{Category: CategoryItem, Amount: -3193, CurrencyCode: "EUR", IsNetPrice: true},
		taxRow(3193, CategoryItem),
		Row{Category: CategoryDelivery, Amount: 500, CurrencyCode: "EUR"},
	)
}

func TestSheetSums(t *testing.T) {
	s := normalizedSheet()

	tests := []struct {
		name string
		got  types.Money
		want int64
	}{
		{"gross all", s.Gross(), 20500},
		{"net all", s.Net(), 17307},
		{"tax all", s.TaxSum(), 3193},
		{"gross items", s.Gross(CategoryItem), 20000},
		{"net items", s.Net(CategoryItem), 16807},
		{"tax items", s.TaxSum(CategoryItem), 3193},
		{"gross delivery", s.Gross(CategoryDelivery), 500},
		{"total", s.Total(), 20500},
		{"total items+delivery", s.Total(CategoryItem, CategoryDelivery), 20500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Amount != tt.want {
				t.Errorf("got %d, want %d", tt.got.Amount, tt.want)
			}
		})
	}
}

func TestSheetRoundTripLaw(t *testing.T) {
	s := normalizedSheet()

	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	want := s.Net().Add(s.TaxSum())
	if !s.Gross().Equal(want) {
		t.Errorf("gross %v != net+tax %v", s.Gross(), want)
	}
}

func TestSheetDiscountSum(t *testing.T) {
	s := NewSheet("EUR",
		itemRow(20000),
		Row{Category: CategoryDiscount, Amount: -10000, CurrencyCode: "EUR", DiscountID: "dsc_a", IsTaxable: true},
		Row{Category: CategoryDiscount, Amount: 1597, CurrencyCode: "EUR", DiscountID: "dsc_a", IsNetPrice: true},
		Row{Category: CategoryTax, Amount: -1597, CurrencyCode: "EUR", DiscountID: "dsc_a"},
		Row{Category: CategoryDiscount, Amount: -500, CurrencyCode: "EUR", DiscountID: "dsc_b"},
	)

	if got := s.DiscountSum("dsc_a").Amount; got != -10000 {
		t.Errorf("dsc_a: got %d, want -10000", got)
	}
	if got := s.DiscountSum("dsc_b").Amount; got != -500 {
		t.Errorf("dsc_b: got %d, want -500", got)
	}
	if got := s.DiscountSum("").Amount; got != -10500 {
		t.Errorf("all discounts: got %d, want -10500", got)
	}
}

func TestSheetImmutability(t *testing.T) {
	orig := NewSheet("EUR", itemRow(1000))
	grown := orig.Add(itemRow(500))
	replaced := orig.Reset(itemRow(99))

	if orig.Len() != 1 {
		t.Errorf("original sheet modified: %d rows", orig.Len())
	}
	if grown.Len() != 2 {
		t.Errorf("Add: got %d rows, want 2", grown.Len())
	}
	if replaced.Len() != 1 || replaced.Rows()[0].Amount != 99 {
		t.Error("Reset should replace all rows")
	}
	if orig.Gross().Amount != 1000 {
		t.Errorf("original gross changed: %d", orig.Gross().Amount)
	}
}

func TestSheetCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on mixed currencies")
		}
	}()
	NewSheet("EUR").Add(Row{Category: CategoryItem, Amount: 100, CurrencyCode: "CHF"})
}

func TestRowWithMetaDoesNotShare(t *testing.T) {
	orig := Row{Category: CategoryItem, Amount: 1, CurrencyCode: "EUR"}
	tagged := orig.WithMeta(MetaAdapter, "pricing.test")
	retagged := tagged.WithMeta(MetaAdapter, "pricing.other")

	if orig.Meta != nil {
		t.Error("original meta modified")
	}
	if tagged.AdapterKey() != "pricing.test" {
		t.Errorf("tagged adapter: %q", tagged.AdapterKey())
	}
	if retagged.AdapterKey() != "pricing.other" {
		t.Errorf("retagged adapter: %q", retagged.AdapterKey())
	}
}

func TestSheetFilter(t *testing.T) {
	s := normalizedSheet()
	taxable := s.Filter(func(r Row) bool { return r.IsTaxable })
	if len(taxable) != 1 || taxable[0].Amount != 20000 {
		t.Errorf("unexpected taxable rows: %v", taxable)
	}
}
