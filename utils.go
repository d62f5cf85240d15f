package billterm

import "github.com/shopspring/decimal"

func incMax(v, max int) int {
	if v >= max {
		return max
	}
	return v + 1
}

func decMin(v, min int) int {
	if v <= min {
		return min
	}
	return v - 1
}

func incWrap(v, min, max int) int {
	switch {
	case v >= max || v < min:
		return min
	default:
		return v + 1
	}
}

func decWrap(v, min, max int) int {
	switch {
	case v <= min || v > max:
		return max
	default:
		return v - 1
	}
}

// money renders a decimal amount for display, always with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
