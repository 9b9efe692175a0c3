package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		price string
		want  int64
	}{
		{"3.5", 350},
		{"3.50", 350},
		{"0", 0},
		{"0.005", 1},
		{"12.994", 1299},
		{"12.995", 1300},
		{"100", 10000},
	}
	for _, c := range cases {
		got, err := MinorUnits(decimal.RequireFromString(c.price))
		if err != nil {
			t.Fatalf("MinorUnits(%s): %v", c.price, err)
		}
		if got != c.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", c.price, got, c.want)
		}
	}
}

func TestMinorUnitsNegative(t *testing.T) {
	if _, err := MinorUnits(decimal.RequireFromString("-1.25")); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestTotalMinorUnits(t *testing.T) {
	items := []CartItem{
		{Name: "Samosa", Quantity: 2, Price: decimal.RequireFromString("3.5")},
	}
	total, err := TotalMinorUnits(items)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 700 {
		t.Fatalf("total = %d, want 700", total)
	}
	if s := FormatTotal(total); s != "7.00" {
		t.Fatalf("FormatTotal(700) = %q, want \"7.00\"", s)
	}
}

// Per-item minor-unit summation must agree with summing decimals and
// rounding once at the end, to within one minor unit.
func TestTotalAgreesWithDecimalSum(t *testing.T) {
	carts := [][]CartItem{
		{
			{Name: "Chicken Tikka", Quantity: 1, Price: decimal.RequireFromString("14.95")},
			{Name: "Garlic Naan", Quantity: 3, Price: decimal.RequireFromString("2.99")},
		},
		{
			{Name: "Samosa", Quantity: 2, Price: decimal.RequireFromString("3.5")},
			{Name: "Mango Lassi", Quantity: 4, Price: decimal.RequireFromString("4.255")},
		},
		{
			{Name: "Thali", Quantity: 7, Price: decimal.RequireFromString("19.005")},
		},
	}
	for _, items := range carts {
		perItem, err := TotalMinorUnits(items)
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		sum := decimal.Zero
		for _, item := range items {
			sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		once := sum.Shift(2).Round(0).IntPart()
		if diff := perItem - once; diff < -1 || diff > 1 {
			t.Fatalf("per-item total %d differs from single rounding %d by more than one minor unit", perItem, once)
		}
	}
}
