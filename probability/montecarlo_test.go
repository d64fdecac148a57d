package probability

import (
	"math"
	"testing"

	"github.com/arjunquant/optcore/strategy"
)

func TestSimulatePayoffExpired(t *testing.T) {
	// With zero days to expiry the terminal price is the spot, so every
	// simulated payoff is identical and the summary is exact.
	legs := strategy.LongStraddle("NIFTY", "2026-09-24", 22600, 180, 160).Legs

	res := SimulatePayoff(legs, 22600, 0.2, 0.05, 0, 500)
	if res.Simulations != 500 {
		t.Fatalf("simulations: got %d, want 500", res.Simulations)
	}
	// At the body the straddle loses the whole premium.
	if res.ProbabilityOfProfit != 0 {
		t.Fatalf("probability of profit: got %f, want 0", res.ProbabilityOfProfit)
	}
	if math.Abs(res.MeanPayoff-(-340)) > 1e-9 {
		t.Fatalf("mean payoff: got %f, want -340", res.MeanPayoff)
	}
	if math.Abs(res.VaR95-340) > 1e-9 {
		t.Fatalf("VaR95: got %f, want 340", res.VaR95)
	}
	if math.Abs(res.ExpectedShortfall-340) > 1e-9 {
		t.Fatalf("expected shortfall: got %f, want 340", res.ExpectedShortfall)
	}
}

func TestSimulatePayoffDeepITM(t *testing.T) {
	// A call struck far below any plausible terminal price is effectively
	// always exercised, so the probability of profit is ~1.
	legs := []strategy.Leg{{
		OptionType:  strategy.Call,
		Side:        strategy.Long,
		Quantity:    1,
		StrikePrice: 1,
		Premium:     0.01,
	}}

	res := SimulatePayoff(legs, 100, 0.2, 0.05, 30, 2000)
	if res.ProbabilityOfProfit < 0.999 {
		t.Fatalf("deep ITM probability of profit: got %f", res.ProbabilityOfProfit)
	}
	if res.MeanPayoff <= 0 {
		t.Fatalf("deep ITM mean payoff: got %f", res.MeanPayoff)
	}
}

func TestSimulatePayoffShortStraddleLosesInTails(t *testing.T) {
	legs := strategy.ShortStraddle("NIFTY", "2026-09-24", 100, 4, 3).Legs

	res := SimulatePayoff(legs, 100, 0.6, 0.05, 60, 4000)
	// High vol pushes plenty of mass past the breakevens.
	if res.ProbabilityOfProfit <= 0 || res.ProbabilityOfProfit >= 1 {
		t.Fatalf("probability of profit out of the open interval: %f", res.ProbabilityOfProfit)
	}
	if res.VaR95 <= 0 {
		t.Fatalf("VaR95 should be a positive loss: %f", res.VaR95)
	}
	if res.ExpectedShortfall < res.VaR95 {
		t.Fatalf("expected shortfall %f below VaR95 %f", res.ExpectedShortfall, res.VaR95)
	}
	if res.VaR99 < res.VaR95 {
		t.Fatalf("VaR99 %f below VaR95 %f", res.VaR99, res.VaR95)
	}
}

func TestSimulatePayoffDefaultSimulations(t *testing.T) {
	legs := []strategy.Leg{{OptionType: strategy.Call, Side: strategy.Long, Quantity: 1, StrikePrice: 100, Premium: 5}}
	res := SimulatePayoff(legs, 100, 0.2, 0.05, 30, 0)
	if res.Simulations != DefaultSimulations {
		t.Fatalf("simulations: got %d, want %d", res.Simulations, DefaultSimulations)
	}
}
