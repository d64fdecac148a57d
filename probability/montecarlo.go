package probability

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/arjunquant/optcore/strategy"
)

const (
	// DefaultSimulations balances scan throughput against estimate noise.
	DefaultSimulations = 1000
	numWorkers         = 8
	hoursPerYearDays   = 365.25
)

var rngPool = sync.Pool{
	New: func() interface{} {
		return rand.New(rand.NewSource(uint64(rand.Int63())))
	},
}

// Result summarizes a terminal-price Monte Carlo run over a strategy's
// expiration payoff.
type Result struct {
	ProbabilityOfProfit float64 `json:"probability_of_profit"`
	MeanPayoff          float64 `json:"mean_payoff"`
	VaR95               float64 `json:"var_95"`
	VaR99               float64 `json:"var_99"`
	ExpectedShortfall   float64 `json:"expected_shortfall"`
	Simulations         int     `json:"simulations"`
}

// SimulatePayoff estimates the profit distribution of a strategy by
// simulating geometric Brownian terminal prices and evaluating the
// expiration payoff at each. Only the terminal price matters for
// piecewise-linear payoffs, so no path is simulated.
func SimulatePayoff(legs []strategy.Leg, spot, sigma, riskFreeRate float64, daysToExpiration, simulations int) Result {
	if simulations <= 0 {
		simulations = DefaultSimulations
	}
	T := float64(daysToExpiration) / hoursPerYearDays
	if T < 0 {
		T = 0
	}

	drift := (riskFreeRate - 0.5*sigma*sigma) * T
	diffusion := sigma * math.Sqrt(T)

	payoffs := make([]float64, simulations)
	var wg sync.WaitGroup
	chunk := (simulations + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		if start >= simulations {
			break
		}
		end := start + chunk
		if end > simulations {
			end = simulations
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			rng := rngPool.Get().(*rand.Rand)
			defer rngPool.Put(rng)

			for i := start; i < end; i++ {
				terminal := spot * math.Exp(drift+diffusion*rng.NormFloat64())
				payoffs[i] = strategy.PayoffAt(legs, terminal)
			}
		}(start, end)
	}
	wg.Wait()

	return summarize(payoffs)
}

func summarize(payoffs []float64) Result {
	profitable := 0
	mean := 0.0
	for _, p := range payoffs {
		if p > 0 {
			profitable++
		}
		mean += p
	}
	n := len(payoffs)
	mean /= float64(n)

	return Result{
		ProbabilityOfProfit: float64(profitable) / float64(n),
		MeanPayoff:          mean,
		VaR95:               valueAtRisk(payoffs, 0.95),
		VaR99:               valueAtRisk(payoffs, 0.99),
		ExpectedShortfall:   expectedShortfall(payoffs, 0.95),
		Simulations:         n,
	}
}
