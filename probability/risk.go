package probability

import "sort"

// valueAtRisk returns the loss at the given confidence level: the
// (confidence)-quantile of the loss distribution, where loss = -payoff.
func valueAtRisk(payoffs []float64, confidence float64) float64 {
	if len(payoffs) == 0 {
		return 0
	}

	losses := make([]float64, len(payoffs))
	for i, p := range payoffs {
		losses[i] = -p
	}
	sort.Float64s(losses)

	idx := int(confidence * float64(len(losses)))
	if idx >= len(losses) {
		idx = len(losses) - 1
	}
	return losses[idx]
}

// expectedShortfall averages the losses beyond the VaR cutoff, the
// conditional tail expectation at the given confidence level.
func expectedShortfall(payoffs []float64, confidence float64) float64 {
	if len(payoffs) == 0 {
		return 0
	}

	losses := make([]float64, len(payoffs))
	for i, p := range payoffs {
		losses[i] = -p
	}
	sort.Float64s(losses)

	idx := int(confidence * float64(len(losses)))
	if idx >= len(losses) {
		idx = len(losses) - 1
	}

	tail := losses[idx:]
	sum := 0.0
	for _, l := range tail {
		sum += l
	}
	return sum / float64(len(tail))
}
