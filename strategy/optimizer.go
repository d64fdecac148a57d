package strategy

import "github.com/arjunquant/optcore/chain"

// SweepResult records the outcome of one wing width in a sweep.
type SweepResult struct {
	WingWidth float64      `json:"wing_width"`
	Best      *Opportunity `json:"best,omitempty"`
	Found     int          `json:"found"`
}

// OptimizeIronCondor sweeps candidate wing widths and returns the condor
// with the highest return on risk that clears the criteria, plus the
// per-width results for inspection. This is an explicit parameter sweep
// over already-priced chain data; nothing is re-priced and there is no
// gradient search. The first return is nil when no width produces a
// qualifying condor.
func OptimizeIronCondor(snap *chain.Snapshot, c Criteria, wingWidths []float64) (*Opportunity, []SweepResult) {
	var best *Opportunity
	results := make([]SweepResult, 0, len(wingWidths))

	for _, width := range wingWidths {
		swept := c
		swept.WingWidth = width

		opps := ScreenIronCondors(snap, swept, nil)
		res := SweepResult{WingWidth: width, Found: len(opps)}
		if len(opps) > 0 {
			top := opps[0]
			res.Best = &top
			if best == nil || top.ReturnOnRisk > best.ReturnOnRisk {
				best = &top
			}
		}
		results = append(results, res)
	}

	return best, results
}
