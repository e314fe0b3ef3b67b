package pricing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Shipping is free above the threshold, flat otherwise. Amounts are whole
// rupees throughout; the payment gateway boundary converts to paise.
const (
	FreeShippingOver = 1499
	ShippingFee      = 99
)

type Quote struct {
	Subtotal int `json:"subtotal"`
	Discount int `json:"discount"`
	Shipping int `json:"shipping"`
	Total    int `json:"total"`
}

func Compute(subtotal, discount int) Quote {
	shipping := ShippingFee
	if subtotal > FreeShippingOver {
		shipping = 0
	}
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal - discount + shipping,
	}
}

// NormalizePrice parses a price that may arrive as a number or a formatted
// string ("₹1,299"). Contract: the result is a non-negative integer rupee
// amount; unparseable input yields 0 so a malformed line degrades to a
// zero-cost line instead of blocking checkout.
func NormalizePrice(v any) int {
	switch p := v.(type) {
	case nil:
		return 0
	case int:
		return max(p, 0)
	case int64:
		return max(int(p), 0)
	case float64:
		return max(int(p), 0)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0
		}
		return max(int(f), 0)
	case string:
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, p)
		if digits == "" {
			return 0
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
