package volatility

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDays is the annualization base for daily return series.
const TradingDays = 252

// LogReturns computes ln(p[i]/p[i-1]) over consecutive pairs, skipping
// pairs with a non-positive price.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 && prices[i] > 0 {
			returns = append(returns, math.Log(prices[i]/prices[i-1]))
		}
	}
	return returns
}

// Historical computes annualized close-to-close volatility from a price
// series: sample standard deviation of log returns scaled by the square
// root of periods per year. Returns 0 with fewer than two usable returns.
func Historical(prices []float64, periods int) float64 {
	returns := LogReturns(prices)
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(float64(periods))
}

// GarchForecast is a one-step GARCH(1,1) variance forecast seeded at the
// long-run sample variance: omega is backed out from the long-run level,
// then exactly one recursion is applied using the most recent return.
// This is a quick approximation, not a fitted series; see Fit for the
// maximum-likelihood route.
func GarchForecast(returns []float64, alpha, beta float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	longRunVar := stat.Variance(returns, nil)
	omega := longRunVar * (1 - alpha - beta)

	last := returns[len(returns)-1]
	variance := omega + alpha*last*last + beta*longRunVar

	return math.Sqrt(variance * TradingDays)
}
