package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the only currency the storefront bills in.
const Currency = "USD"

// MinorUnits converts a decimal price into an integer count of currency
// minor units (cents for USD), rounding half away from zero.
func MinorUnits(price decimal.Decimal) (int64, error) {
	n := price.Shift(2).Round(0).IntPart()
	if n < 0 {
		return 0, fmt.Errorf("price %s is negative", price)
	}
	return n, nil
}

// TotalMinorUnits sums quantity x unit price over the cart, accumulating in
// integer minor units so repeated float addition cannot drift the total.
func TotalMinorUnits(items []CartItem) (int64, error) {
	var total int64
	for _, item := range items {
		unit, err := MinorUnits(item.Price)
		if err != nil {
			return 0, fmt.Errorf("item %q: %w", item.Name, err)
		}
		total += int64(item.Quantity) * unit
	}
	return total, nil
}

// FormatTotal renders a minor-unit total as a two-decimal display string,
// e.g. 700 -> "7.00". Display only; provider calls use per-item minor units.
func FormatTotal(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
