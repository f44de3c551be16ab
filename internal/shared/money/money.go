package money

import "github.com/shopspring/decimal"

// Scale is the number of decimal places kept by numeric(14,2) money columns.
const Scale int32 = 2

// FitsScale reports whether d can be stored in a column with the given number
// of decimal places without Postgres rounding it.
func FitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Round(scale))
}

// IsAmount reports whether d is a positive amount with at most Scale decimal places.
func IsAmount(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive() && FitsScale(*d, Scale)
}
