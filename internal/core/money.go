// Package core holds the zakat data model and the money arithmetic shared
// by the stores, the recorder and the CLI.
//
// Monetary amounts, catalog prices and rice quantities are all
// decimal.Decimal end-to-end; float64 never enters the domain, so a total
// like 12000.00 * 2.5 is exact and rounded exactly once.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currency minor-unit precision (Rupiah is formatted with 2 decimals here,
// matching the stored totals)
const moneyScale = 2

// ComputeTotal derives a transaction total from the catalog price and the
// distributed quantity. The product is rounded half-up to the currency's
// minor-unit precision, once, at the end; there is no intermediate rounding.
func ComputeTotal(pricePerKg, quantityKg decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which for the non-negative
	// values reaching this point is exactly half-up.
	return pricePerKg.Mul(quantityKg).Round(moneyScale)
}

// ParseDecimal parses operator input into a decimal. A comma decimal
// separator is accepted and normalized ("2,5" == "2.5"), mirroring how
// operators here commonly type amounts.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	return decimal.NewFromString(s)
}

// ParseAmount parses a contribution amount, which must be positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// ParseQuantity parses a rice quantity in kilograms, which must be positive.
func ParseQuantity(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	return d, nil
}

// ParsePrice parses a per-kilogram catalog price, which must be
// non-negative.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return d, nil
}

// FormatMoney renders a monetary value with the currency's minor-unit
// precision, for display and export.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(moneyScale)
}
