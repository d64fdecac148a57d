package options

import (
	"math"
	"strings"
)

const (
	// DaysPerYear is the calendar-day divisor for theta.
	DaysPerYear = 365
	// GreekScale converts raw vega/rho derivatives to per-1%-move units.
	GreekScale = 100
)

// Greeks are the five price sensitivities in trader display convention:
// theta per calendar day, vega and rho per 1-percentage-point move.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// IsCall reports whether an option type string denotes a call.
// Matching is case-insensitive; anything that is not a call is a put.
func IsCall(optionType string) bool {
	return strings.EqualFold(optionType, "call")
}

// D1D2 computes the Black-Scholes d1 and d2 terms.
// Caller guards T <= 0 and sigma <= 0.
func D1D2(S, K, T, r, sigma float64) (float64, float64) {
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)
	return d1, d2
}

// CallPrice returns the Black-Scholes price of a European call,
// floored at zero. Expired contracts collapse to intrinsic value.
func CallPrice(S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return math.Max(S-K, 0)
	}
	d1, d2 := D1D2(S, K, T, r, sigma)
	return math.Max(S*normCDF(d1)-K*math.Exp(-r*T)*normCDF(d2), 0)
}

// PutPrice returns the Black-Scholes price of a European put,
// floored at zero. Expired contracts collapse to intrinsic value.
func PutPrice(S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return math.Max(K-S, 0)
	}
	d1, d2 := D1D2(S, K, T, r, sigma)
	return math.Max(K*math.Exp(-r*T)*normCDF(-d2)-S*normCDF(-d1), 0)
}

// Price dispatches on the option type string.
func Price(S, K, T, r, sigma float64, optionType string) float64 {
	if IsCall(optionType) {
		return CallPrice(S, K, T, r, sigma)
	}
	return PutPrice(S, K, T, r, sigma)
}

// ComputeGreeks returns the five Greeks in display convention.
// At or past expiry the contract has no optionality left: delta pins to
// +-1 or 0 on moneyness and the remaining Greeks are zero.
func ComputeGreeks(S, K, T, r, sigma float64, optionType string) Greeks {
	isCall := IsCall(optionType)

	if T <= 0 {
		var delta float64
		if isCall && S > K {
			delta = 1
		} else if !isCall && S < K {
			delta = -1
		}
		return Greeks{Delta: delta}
	}

	d1, d2 := D1D2(S, K, T, r, sigma)
	sqrtT := math.Sqrt(T)
	discount := K * math.Exp(-r*T)

	var delta, theta, rho float64
	if isCall {
		delta = normCDF(d1)
		theta = -(S*normPDF(d1)*sigma)/(2*sqrtT) - r*discount*normCDF(d2)
		rho = K * T * math.Exp(-r*T) * normCDF(d2)
	} else {
		delta = normCDF(d1) - 1
		theta = -(S*normPDF(d1)*sigma)/(2*sqrtT) + r*discount*normCDF(-d2)
		rho = -K * T * math.Exp(-r*T) * normCDF(-d2)
	}

	return Greeks{
		Delta: delta,
		Gamma: normPDF(d1) / (S * sigma * sqrtT),
		Theta: theta / DaysPerYear,
		Vega:  S * normPDF(d1) * sqrtT / GreekScale,
		Rho:   rho / GreekScale,
	}
}

// RawVega is the unscaled vega derivative, used for the Newton step in
// implied volatility inversion.
func RawVega(S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return 0
	}
	d1, _ := D1D2(S, K, T, r, sigma)
	return S * normPDF(d1) * math.Sqrt(T)
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal probability density function.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
