// Package promo validates promo codes and computes discount amounts.
package promo

import (
	"errors"
	"math"
	"strings"
)

var ErrInvalidPromo = errors.New("invalid promo code")

// Discount kinds.
const (
	KindPercentage = "percentage"
	KindFixed      = "fixed"
)

// Code is one entry of the static promo table.
type Code struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
}

var table = map[string]Code{
	"LOVE10":    {Code: "LOVE10", Discount: 10, Kind: KindPercentage, Description: "10% off your order"},
	"FIRST15":   {Code: "FIRST15", Discount: 15, Kind: KindPercentage, Description: "15% off for new customers"},
	"SWEET5":    {Code: "SWEET5", Discount: 5, Kind: KindFixed, Description: "$5 off your order"},
	"MYSTERY20": {Code: "MYSTERY20", Discount: 20, Kind: KindPercentage, Description: "20% off mystery collection"},
}

// Normalize canonicalizes a user-supplied code for lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup validates a code against the table. It never mutates any state;
// unknown codes get ErrInvalidPromo.
func Lookup(code string) (Code, error) {
	c, ok := table[Normalize(code)]
	if !ok {
		return Code{}, ErrInvalidPromo
	}
	return c, nil
}

// Amount computes the discount against a subtotal. Fixed discounts are
// capped at the subtotal so a total can never go negative.
func (c Code) Amount(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	switch c.Kind {
	case KindPercentage:
		return subtotal * c.Discount / 100
	case KindFixed:
		return math.Min(c.Discount, subtotal)
	}
	return 0
}
