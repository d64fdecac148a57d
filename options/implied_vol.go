package options

import "math"

const (
	ivInitialGuess = 0.3
	ivMaxIter      = 100
	ivTolerance    = 1e-6
)

// ImpliedVolatility inverts a market price to a Black-Scholes volatility
// via Newton-Raphson. It returns ok=false when the contract is expired,
// when vega collapses before any positive iterate is reached, or when no
// positive iterate survives the loop.
//
// Weak contract: if the iteration budget runs out with a positive sigma
// still in hand, that sigma is returned even though |price - market| may
// exceed the tolerance. Batch chain scans rely on this soft behavior;
// callers needing a strict fit should re-price and check the residual.
func ImpliedVolatility(marketPrice, S, K, T, r float64, optionType string) (float64, bool) {
	if T <= 0 {
		return 0, false
	}

	sigma := ivInitialGuess
	for i := 0; i < ivMaxIter; i++ {
		price := Price(S, K, T, r, sigma, optionType)
		vega := RawVega(S, K, T, r, sigma)

		diff := price - marketPrice
		if math.Abs(diff) < ivTolerance {
			return sigma, true
		}
		if vega == 0 {
			break
		}

		next := sigma - diff/vega
		if next <= 0 {
			// Halve instead of stepping negative.
			sigma = sigma / 2
		} else {
			sigma = next
		}
	}

	if sigma > 0 {
		return sigma, true
	}
	return 0, false
}
