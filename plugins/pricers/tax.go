// Package pricers contains the reference pricing adapters: catalog prices,
// discounts, delivery and payment fees, EU VAT and price rounding.
package pricers

import (
	"math"

	"github.com/unchainedshop/unchained-sub022/calculation"
)

// Standard VAT rates by ISO country code.
var vatRates = map[string]float64{
	"AT": 0.20,
	"BE": 0.21,
	"DE": 0.19,
	"DK": 0.25,
	"ES": 0.21,
	"FI": 0.255,
	"FR": 0.20,
	"IT": 0.22,
	"NL": 0.21,
	"PT": 0.23,
	"SE": 0.25,
}

// VATRate returns the standard VAT rate for a country, or false when the
// country is not covered.
func VATRate(countryCode string) (float64, bool) {
	rate, ok := vatRates[countryCode]

	return rate, ok
}

func roundHalfAway(value float64) int64 {
	return int64(math.Round(value))
}

// applyVAT normalizes every taxable row of the sheet. Net rows get a tax
// row on top; gross rows get a net correction row plus the extracted tax
// row. Corrections and tax rows inherit the source row's discount link so
// discount sums keep reporting gross effects.
func applyVAT(sheet *calculation.Sheet, rate float64, adapterKey string) *calculation.Sheet {
	out := sheet

	for _, row := range sheet.Rows() {
		if !row.IsTaxable {
			continue
		}

		if row.IsNetPrice {
			tax := roundHalfAway(float64(row.Amount) * rate)
			if tax == 0 {
				continue
			}

			out = out.Add(taxRow(row, tax, rate, adapterKey))

			continue
		}

		net := roundHalfAway(float64(row.Amount) / (1 + rate))
		tax := row.Amount - net
		if tax == 0 {
			continue
		}

		correction := calculation.Row{
			Category:     row.Category,
			Amount:       -tax,
			CurrencyCode: row.CurrencyCode,
			IsNetPrice:   true,
			DiscountID:   row.DiscountID,
		}

		out = out.Add(
			correction.WithMeta(calculation.MetaAdapter, adapterKey),
			taxRow(row, tax, rate, adapterKey),
		)
	}

	return out
}

func taxRow(source calculation.Row, amount int64, rate float64, adapterKey string) calculation.Row {
	row := calculation.Row{
		Category:     calculation.CategoryTax,
		Amount:       amount,
		CurrencyCode: source.CurrencyCode,
		Rate:         rate,
		DiscountID:   source.DiscountID,
	}

	return row.
		WithMeta(calculation.MetaBaseCategory, string(source.Category)).
		WithMeta(calculation.MetaAdapter, adapterKey)
}
