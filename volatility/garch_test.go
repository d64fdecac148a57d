package volatility

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func syntheticReturns(n int, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	returns := make([]float64, n)
	for i := range returns {
		returns[i] = sigma * rng.NormFloat64()
	}
	return returns
}

func TestGarchFitConstraints(t *testing.T) {
	returns := syntheticReturns(250, 0.012, 42)

	params, err := Fit(returns, 7)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.IsNaN(params.Omega) || math.IsNaN(params.Alpha) || math.IsNaN(params.Beta) {
		t.Fatalf("fit produced NaN params: %+v", params)
	}

	vol := params.ConditionalVolatility(returns)
	if math.IsNaN(vol) || vol <= 0 {
		t.Fatalf("conditional volatility not positive: %f", vol)
	}
	// Daily sigma 1.2% annualizes to ~19%; the fit should land in a broad
	// band around it.
	if vol < 0.05 || vol > 0.60 {
		t.Fatalf("conditional volatility implausible: %f", vol)
	}
}

func TestGarchFitTooFewReturns(t *testing.T) {
	if _, err := Fit([]float64{0.01}, 1); err == nil {
		t.Fatal("expected error for short return series")
	}
}

func TestGarchLogLikelihoodFinite(t *testing.T) {
	returns := syntheticReturns(100, 0.01, 3)
	g := GARCH11{Omega: 1e-6, Alpha: 0.1, Beta: 0.8}
	if ll := g.LogLikelihood(returns); math.IsNaN(ll) || math.IsInf(ll, 0) {
		t.Fatalf("log-likelihood not finite: %f", ll)
	}
}
