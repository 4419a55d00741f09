package util

import (
	"fmt"
	"math"
)

// FormatLargeNumber renders a number with a K/M/B/T suffix.
func FormatLargeNumber(num float64) string {
	if num == 0 {
		return "0"
	}
	abs := math.Abs(num)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", num/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", num/1e3)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}

// FormatCurrency renders amount with the given symbol, using lakh/crore
// units for large amounts.
func FormatCurrency(amount float64, symbol string) string {
	switch {
	case amount >= 1e7:
		return fmt.Sprintf("%s%.2f Cr", symbol, amount/1e7)
	case amount >= 1e5:
		return fmt.Sprintf("%s%.2f L", symbol, amount/1e5)
	default:
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
