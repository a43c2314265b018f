package calculation

import (
	"fmt"

	"github.com/unchainedshop/unchained-sub022/types"
)

// Sheet is an ordered, append-only collection of calculation rows bound to a
// single currency. Sheets are values: Add and Reset return new sheets and
// never modify the receiver, so independent entities can be priced
// concurrently against shared inputs.
//
// Mixing currencies in one sheet is a programming error and panics.
type Sheet struct {
	currency string
	rows     []Row
}

// NewSheet creates a sheet bound to the given currency, seeded with the
// given rows. Panics if any row carries a different currency.
func NewSheet(currency string, rows ...Row) *Sheet {
	s := &Sheet{currency: currency}
	for _, r := range rows {
		s.assertCurrency(r)
	}
	s.rows = append([]Row(nil), rows...)
	return s
}

// Currency returns the currency code every row of the sheet shares.
func (s *Sheet) Currency() string { return s.currency }

// Len returns the number of rows.
func (s *Sheet) Len() int { return len(s.rows) }

// IsEmpty reports whether the sheet has no rows.
func (s *Sheet) IsEmpty() bool { return len(s.rows) == 0 }

// Rows returns a copy of the row list in insertion order.
func (s *Sheet) Rows() []Row {
	return append([]Row(nil), s.rows...)
}

// Add returns a new sheet with the given rows appended.
// Panics if a row carries a different currency than the sheet.
func (s *Sheet) Add(rows ...Row) *Sheet {
	for _, r := range rows {
		s.assertCurrency(r)
	}
	next := make([]Row, 0, len(s.rows)+len(rows))
	next = append(next, s.rows...)
	next = append(next, rows...)
	return &Sheet{currency: s.currency, rows: next}
}

// Reset returns a new sheet with all existing rows discarded and only the
// given rows present. Used by adapters that replace earlier contributions,
// such as rounding.
func (s *Sheet) Reset(rows ...Row) *Sheet {
	return NewSheet(s.currency, rows...)
}

// Filter returns the rows matching the predicate, in insertion order.
func (s *Sheet) Filter(keep func(Row) bool) []Row {
	var out []Row
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ──────────────────────────────────────────────────
// Aggregate queries
// ──────────────────────────────────────────────────

// Gross sums row amounts including tax. With no categories it is the sum of
// every row: tax adapters normalize gross-priced rows into net rows plus
// explicit Tax rows, so the plain sum is the gross total. With categories,
// Tax rows are attributed via their base category.
func (s *Sheet) Gross(categories ...Category) types.Money {
	return s.sum(func(r Row) bool {
		if len(categories) == 0 {
			return true
		}
		if containsCategory(categories, r.Category) {
			return true
		}
		return r.Category == CategoryTax && containsCategory(categories, r.BaseCategory())
	})
}

// Net sums row amounts excluding tax, optionally scoped to categories.
func (s *Sheet) Net(categories ...Category) types.Money {
	return s.Gross(categories...).Subtract(s.TaxSum(categories...))
}

// TaxSum sums Tax rows. With categories, only tax derived from those
// categories is counted.
func (s *Sheet) TaxSum(categories ...Category) types.Money {
	return s.sum(func(r Row) bool {
		if r.Category != CategoryTax {
			return false
		}
		return len(categories) == 0 || containsCategory(categories, r.BaseCategory())
	})
}

// DiscountSum reports the full gross effect of discounts. With a discount ID
// it sums every row carrying that ID: the discount row, its tax correction
// and its tax row. With an empty ID it covers all discount-linked rows.
func (s *Sheet) DiscountSum(discountID string) types.Money {
	return s.sum(func(r Row) bool {
		if discountID != "" {
			return r.DiscountID == discountID
		}
		return r.DiscountID != "" || r.Category == CategoryDiscount
	})
}

// Total is the gross total, optionally scoped to categories. Downstream
// order totals are derived from it.
func (s *Sheet) Total(categories ...Category) types.Money {
	return s.Gross(categories...)
}

// Validate checks the sheet's invariants: every row carries the sheet's
// currency and the round-trip law gross == net + tax holds.
func (s *Sheet) Validate() error {
	for _, r := range s.rows {
		if r.CurrencyCode != s.currency {
			return fmt.Errorf("calculation: row currency %s does not match sheet currency %s", r.CurrencyCode, s.currency)
		}
	}
	gross := s.Gross()
	rhs := s.Net().Add(s.TaxSum())
	if !gross.Equal(rhs) {
		return fmt.Errorf("calculation: gross %s != net + tax %s", gross, rhs)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

func (s *Sheet) sum(keep func(Row) bool) types.Money {
	total := types.Zero(s.currency)
	for _, r := range s.rows {
		if keep(r) {
			total = total.Add(types.New(r.Amount, r.CurrencyCode))
		}
	}
	return total
}

func (s *Sheet) assertCurrency(r Row) {
	if r.CurrencyCode != s.currency {
		panic(fmt.Sprintf("calculation: row currency %s does not match sheet currency %s", r.CurrencyCode, s.currency))
	}
}

func containsCategory(categories []Category, c Category) bool {
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}
