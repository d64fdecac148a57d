package strategy

import (
	"math"

	"github.com/arjunquant/optcore/options"
)

// Leg option types. Stock legs represent shares held against the options.
const (
	Call  = "call"
	Put   = "put"
	Stock = "stock"
)

// Leg sides.
const (
	Long  = "long"
	Short = "short"
)

// Leg is one position within a multi-leg strategy. Premium is the per-unit
// price paid (long) or received (short); for stock legs it is the entry
// price. Greeks are per-unit and unsigned; the side supplies the sign.
type Leg struct {
	OptionType     string         `json:"option_type"`
	Side           string         `json:"side"`
	Quantity       float64        `json:"quantity"`
	StrikePrice    float64        `json:"strike_price,omitempty"`
	ExpirationDate string         `json:"expiration_date,omitempty"`
	Premium        float64        `json:"premium"`
	Symbol         string         `json:"symbol,omitempty"`
	Greeks         options.Greeks `json:"greeks"`
}

// SignedQuantity folds the side into the quantity: short legs count
// negative.
func (l Leg) SignedQuantity() float64 {
	if l.Side == Short {
		return -l.Quantity
	}
	return l.Quantity
}

// exerciseValue is the leg's per-unit value at expiration for a given
// underlying price, before premium. Stock legs are linear in the price.
func (l Leg) exerciseValue(price float64) float64 {
	switch l.OptionType {
	case Call:
		return math.Max(price-l.StrikePrice, 0)
	case Put:
		return math.Max(l.StrikePrice-price, 0)
	default: // stock
		return price
	}
}

// PayoffAt is the net P&L of all legs at a terminal underlying price,
// ignoring Greeks. For stock legs the premium is the entry price, so the
// same value-minus-premium rule covers every leg type.
func PayoffAt(legs []Leg, price float64) float64 {
	total := 0.0
	for _, l := range legs {
		total += l.SignedQuantity() * (l.exerciseValue(price) - l.Premium)
	}
	return total
}

// NetGreeks sums quantity-weighted per-leg Greeks into one net exposure.
// This is linear superposition only; cross-leg convexity effects are
// intentionally ignored.
func NetGreeks(legs []Leg) options.Greeks {
	var net options.Greeks
	for _, l := range legs {
		q := l.SignedQuantity()
		net.Delta += q * l.Greeks.Delta
		net.Gamma += q * l.Greeks.Gamma
		net.Theta += q * l.Greeks.Theta
		net.Vega += q * l.Greeks.Vega
		net.Rho += q * l.Greeks.Rho
	}
	return net
}
