package bithumb

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitsPrecision is the number of decimals the exchange accepts for order sizes.
const UnitsPrecision = 4

// Quantize truncates units toward zero to UnitsPrecision decimals. NaN and
// infinities quantize to zero. The arithmetic is decimal so a value that
// already has four decimals is returned unchanged.
func Quantize(units float64) decimal.Decimal {
	if math.IsNaN(units) || math.IsInf(units, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(units).Truncate(UnitsPrecision)
}

// ParseUnits quantizes a textual quantity; anything that is not a number
// quantizes to zero.
func ParseUnits(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d.Truncate(UnitsPrecision)
}

func formatUnits(d decimal.Decimal) string {
	return d.StringFixed(UnitsPrecision)
}
