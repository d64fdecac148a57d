package volatility

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
)

// GARCH11 holds fitted GARCH(1,1) parameters.
type GARCH11 struct {
	Omega float64
	Alpha float64
	Beta  float64
}

// LogLikelihood calculates the Gaussian log-likelihood of the model over
// a return series, seeding variance at the long-run level.
func (g GARCH11) LogLikelihood(returns []float64) float64 {
	variance := g.Omega / (1 - g.Alpha - g.Beta)
	logLik := 0.0

	for i := 1; i < len(returns); i++ {
		variance = g.Omega + g.Alpha*returns[i-1]*returns[i-1] + g.Beta*variance
		logLik += -0.5*math.Log(2*math.Pi) - 0.5*math.Log(variance) - 0.5*returns[i]*returns[i]/variance
	}

	return logLik
}

// ConditionalVolatility filters the full return series through the model
// and returns the annualized conditional volatility at the final step.
func (g GARCH11) ConditionalVolatility(returns []float64) float64 {
	variance := g.Omega / (1 - g.Alpha - g.Beta)

	for i := 1; i < len(returns); i++ {
		variance = g.Omega + g.Alpha*returns[i-1]*returns[i-1] + g.Beta*variance
	}

	return math.Sqrt(variance * TradingDays)
}

const (
	mcmcIterations = 2000
	mcmcBurnIn     = 200
	mcmcStepSize   = 0.01
)

// Fit estimates GARCH(1,1) parameters by maximum likelihood: a short
// Metropolis chain locates the high-likelihood region, then Nelder-Mead
// polishes from the post-burn-in average. If Nelder-Mead fails the MCMC
// average is returned as a usable estimate.
func Fit(returns []float64, seed uint64) (GARCH11, error) {
	if len(returns) < 2 {
		return GARCH11{}, errors.New("garch fit needs at least 2 returns")
	}

	src := rand.NewSource(seed)
	step := distuv.Normal{Mu: 0, Sigma: mcmcStepSize, Src: src}
	unif := distuv.Uniform{Min: 0, Max: 1, Src: src}

	chain := make([]GARCH11, mcmcIterations)
	chain[0] = GARCH11{Omega: 0.000001, Alpha: 0.1, Beta: 0.8}

	for i := 1; i < mcmcIterations; i++ {
		proposal := GARCH11{
			Omega: chain[i-1].Omega + step.Rand(),
			Alpha: chain[i-1].Alpha + step.Rand(),
			Beta:  chain[i-1].Beta + step.Rand(),
		}

		// Stationarity: omega > 0, alpha, beta >= 0, alpha + beta < 1.
		if proposal.Omega <= 0 || proposal.Alpha < 0 || proposal.Beta < 0 || proposal.Alpha+proposal.Beta >= 1 {
			chain[i] = chain[i-1]
			continue
		}

		logAcceptProb := proposal.LogLikelihood(returns) - chain[i-1].LogLikelihood(returns)
		if math.Log(unif.Rand()) < logAcceptProb {
			chain[i] = proposal
		} else {
			chain[i] = chain[i-1]
		}
	}

	avg := GARCH11{}
	for i := mcmcBurnIn; i < mcmcIterations; i++ {
		avg.Omega += chain[i].Omega
		avg.Alpha += chain[i].Alpha
		avg.Beta += chain[i].Beta
	}
	n := float64(mcmcIterations - mcmcBurnIn)
	avg.Omega /= n
	avg.Alpha /= n
	avg.Beta /= n

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return -GARCH11{Omega: x[0], Alpha: x[1], Beta: x[2]}.LogLikelihood(returns)
		},
	}

	result, err := optimize.Minimize(problem, []float64{avg.Omega, avg.Alpha, avg.Beta}, nil, &optimize.NelderMead{})
	if err != nil {
		return avg, nil
	}

	fitted := GARCH11{Omega: result.X[0], Alpha: result.X[1], Beta: result.X[2]}
	if fitted.Omega <= 0 || fitted.Alpha < 0 || fitted.Beta < 0 || fitted.Alpha+fitted.Beta >= 1 {
		// Unconstrained polish walked out of the stationarity region;
		// the MCMC average is always inside it.
		return avg, nil
	}
	return fitted, nil
}
