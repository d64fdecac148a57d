package strategy

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/arjunquant/optcore/chain"
)

// Criteria are the threshold filters applied by the screeners. Deltas are
// absolute values; TargetReturn is premium yield over the capital at risk
// for the holding period, not annualized.
type Criteria struct {
	TargetReturn    float64 `yaml:"target_return"`
	MinCredit       float64 `yaml:"min_credit"`
	MaxShortDelta   float64 `yaml:"max_short_delta"`
	MinOpenInterest int     `yaml:"min_open_interest"`
	WingWidth       float64 `yaml:"wing_width"`
	MinReturnOnRisk float64 `yaml:"min_return_on_risk"`
}

// Opportunity is one screened strategy with its ranking metrics.
// ProbabilityOfProfit is the delta-based approximation, not a simulated
// probability.
type Opportunity struct {
	Strategy            Definition `json:"strategy"`
	Expiration          string     `json:"expiration"`
	Credit              float64    `json:"credit"`
	ReturnOnRisk        float64    `json:"return_on_risk"`
	ProbabilityOfProfit float64    `json:"probability_of_profit"`
}

// ScreenCoveredCalls scans a chain snapshot for OTM calls whose premium
// yield over the stock price clears the target return.
func ScreenCoveredCalls(snap *chain.Snapshot, c Criteria) []Opportunity {
	spot := snap.UnderlyingPriceF()
	var opps []Opportunity

	for expiration, exp := range snap.Expirations {
		for _, o := range exp.Options {
			if o.OptionType != Call || o.StrikeF() <= spot {
				continue
			}
			if !passesLiquidity(o, c) {
				continue
			}
			if math.Abs(o.Greeks.Delta) > c.MaxShortDelta {
				continue
			}

			premium := o.BidF()
			if premium <= 0 || premium/spot < c.TargetReturn {
				continue
			}

			opps = append(opps, Opportunity{
				Strategy:            CoveredCall(snap.Symbol, expiration, spot, o.StrikeF(), premium),
				Expiration:          expiration,
				Credit:              premium,
				ReturnOnRisk:        premium / spot,
				ProbabilityOfProfit: 1 - math.Abs(o.Greeks.Delta),
			})
		}
	}

	sortByReturnOnRisk(opps)
	return opps
}

// ScreenCashSecuredPuts scans for OTM puts whose premium yield over the
// secured strike clears the target return.
func ScreenCashSecuredPuts(snap *chain.Snapshot, c Criteria) []Opportunity {
	spot := snap.UnderlyingPriceF()
	var opps []Opportunity

	for expiration, exp := range snap.Expirations {
		for _, o := range exp.Options {
			if o.OptionType != Put || o.StrikeF() >= spot {
				continue
			}
			if !passesLiquidity(o, c) {
				continue
			}
			if math.Abs(o.Greeks.Delta) > c.MaxShortDelta {
				continue
			}

			premium := o.BidF()
			strike := o.StrikeF()
			if premium <= 0 || premium/strike < c.TargetReturn {
				continue
			}

			opps = append(opps, Opportunity{
				Strategy:            CashSecuredPut(snap.Symbol, expiration, strike, premium),
				Expiration:          expiration,
				Credit:              premium,
				ReturnOnRisk:        premium / strike,
				ProbabilityOfProfit: 1 - math.Abs(o.Greeks.Delta),
			})
		}
	}

	sortByReturnOnRisk(opps)
	return opps
}

type condorJob struct {
	expiration string
	shortPut   chain.Option
	shortCall  chain.Option
	longPut    chain.Option
	longCall   chain.Option
}

// ScreenIronCondors sweeps every OTM short put / short call pairing in
// the snapshot, wings placed one WingWidth outside each short strike,
// and keeps condors clearing the credit and return-on-risk thresholds.
// The pairwise sweep fans out over a worker pool; pass a progress
// container to get a scan bar, or nil to run quietly.
func ScreenIronCondors(snap *chain.Snapshot, c Criteria, progress *mpb.Progress) []Opportunity {
	jobs := generateCondorJobs(snap, c)

	var bar *mpb.Bar
	if progress != nil && len(jobs) > 0 {
		bar = progress.AddBar(int64(len(jobs)),
			mpb.PrependDecorators(
				decor.Name("Condor scan"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	numWorkers := runtime.NumCPU()
	jobChan := make(chan condorJob, len(jobs))
	resultChan := make(chan Opportunity, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				if opp, ok := evaluateCondor(snap.Symbol, j, c); ok {
					resultChan <- opp
				}
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for _, j := range jobs {
		jobChan <- j
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var opps []Opportunity
	for opp := range resultChan {
		opps = append(opps, opp)
	}

	sortByReturnOnRisk(opps)
	return opps
}

func generateCondorJobs(snap *chain.Snapshot, c Criteria) []condorJob {
	spot := snap.UnderlyingPriceF()
	var jobs []condorJob

	for expiration, exp := range snap.Expirations {
		var puts, calls []chain.Option
		for _, o := range exp.Options {
			if !passesLiquidity(o, c) {
				continue
			}
			switch {
			case o.OptionType == Put && o.StrikeF() < spot:
				puts = append(puts, o)
			case o.OptionType == Call && o.StrikeF() > spot:
				calls = append(calls, o)
			}
		}

		for _, sp := range puts {
			if math.Abs(sp.Greeks.Delta) > c.MaxShortDelta {
				continue
			}
			lp, ok := findByStrike(puts, sp.StrikeF()-c.WingWidth)
			if !ok || lp.StrikeF() >= sp.StrikeF() {
				continue
			}
			for _, sc := range calls {
				if math.Abs(sc.Greeks.Delta) > c.MaxShortDelta {
					continue
				}
				lc, ok := findByStrike(calls, sc.StrikeF()+c.WingWidth)
				if !ok || lc.StrikeF() <= sc.StrikeF() {
					continue
				}
				jobs = append(jobs, condorJob{
					expiration: expiration,
					shortPut:   sp,
					shortCall:  sc,
					longPut:    lp,
					longCall:   lc,
				})
			}
		}
	}

	return jobs
}

func evaluateCondor(symbol string, j condorJob, c Criteria) (Opportunity, bool) {
	def, err := IronCondor(symbol, j.expiration,
		j.longPut.StrikeF(), j.shortPut.StrikeF(), j.shortCall.StrikeF(), j.longCall.StrikeF(),
		j.longPut.AskF(), j.shortPut.BidF(), j.shortCall.BidF(), j.longCall.AskF())
	if err != nil {
		return Opportunity{}, false
	}

	credit := -def.CostBasis
	if credit < c.MinCredit || def.MaxLoss == nil || *def.MaxLoss <= 0 {
		return Opportunity{}, false
	}

	ror := credit / *def.MaxLoss
	if ror < c.MinReturnOnRisk {
		return Opportunity{}, false
	}

	pop := 1 - math.Abs(j.shortPut.Greeks.Delta) - math.Abs(j.shortCall.Greeks.Delta)
	return Opportunity{
		Strategy:            def,
		Expiration:          j.expiration,
		Credit:              credit,
		ReturnOnRisk:        ror,
		ProbabilityOfProfit: pop,
	}, true
}

func passesLiquidity(o chain.Option, c Criteria) bool {
	return o.OpenInterest >= c.MinOpenInterest && o.BidF() > 0 && o.AskF() >= o.BidF()
}

// findByStrike returns the option whose strike is closest to the target,
// requiring a match within one rupee to avoid pairing across strike grids.
func findByStrike(opts []chain.Option, target float64) (chain.Option, bool) {
	best := chain.Option{}
	bestDist := math.Inf(1)
	for _, o := range opts {
		if d := math.Abs(o.StrikeF() - target); d < bestDist {
			best = o
			bestDist = d
		}
	}
	return best, bestDist <= 1.0
}

func sortByReturnOnRisk(opps []Opportunity) {
	sort.Slice(opps, func(i, j int) bool {
		return opps[i].ReturnOnRisk > opps[j].ReturnOnRisk
	})
}
