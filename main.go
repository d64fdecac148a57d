package main

import (
	"math"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
	"github.com/vbauerster/mpb/v7"
	"github.com/xhhuango/json"
	"gopkg.in/yaml.v2"

	"github.com/arjunquant/optcore/chain"
	"github.com/arjunquant/optcore/logger"
	"github.com/arjunquant/optcore/pricing"
	"github.com/arjunquant/optcore/probability"
	"github.com/arjunquant/optcore/strategy"
	"github.com/arjunquant/optcore/volatility"
)

const (
	weightReturn      = 0.4
	weightProbability = 0.4
	weightVaR         = 0.1
	weightES          = 0.1
)

type scanConfig struct {
	RiskFreeRate  float64           `yaml:"risk_free_rate"`
	DividendYield float64           `yaml:"dividend_yield"`
	Screen        strategy.Criteria `yaml:"screen"`
	WingWidths    []float64         `yaml:"wing_widths"`
	TopN          int               `yaml:"top_n"`
	Simulations   int               `yaml:"simulations"`
}

type scoredOpportunity struct {
	strategy.Opportunity
	Simulated      probability.Result `json:"simulated"`
	CompositeScore float64            `json:"composite_score"`
}

type report struct {
	GeneratedAt     string                 `json:"generated_at"`
	Symbol          string                 `json:"symbol"`
	UnderlyingPrice float64                `json:"underlying_price"`
	HistoricalVol   float64                `json:"historical_vol"`
	GarchVol        float64                `json:"garch_vol"`
	GarmanKlassVol  float64                `json:"garman_klass_vol"`
	ParkinsonVol    float64                `json:"parkinson_vol"`
	ScanVol         float64                `json:"scan_vol"`
	CoveredCalls    []strategy.Opportunity `json:"covered_calls"`
	CashSecuredPuts []strategy.Opportunity `json:"cash_secured_puts"`
	IronCondors     []scoredOpportunity    `json:"iron_condors"`
	BestCondor      *strategy.Opportunity  `json:"best_condor,omitempty"`
	WingSweep       []strategy.SweepResult `json:"wing_sweep"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file loaded: %v", err)
	}

	cfgPath := envOr("OPTCORE_CONFIG", "config.yaml")
	snapshotPath := envOr("OPTCORE_SNAPSHOT", "testdata/nifty_chain.json")
	historyPath := envOr("OPTCORE_HISTORY", "testdata/nifty_history.json")
	outputPath := envOr("OPTCORE_OUTPUT", "scan_report.json")

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Errorf("loading config: %v", err)
		os.Exit(1)
	}

	snap, err := chain.LoadSnapshot(snapshotPath)
	if err != nil {
		logger.Errorf("loading snapshot: %v", err)
		os.Exit(1)
	}
	history, err := chain.LoadHistory(historyPath)
	if err != nil {
		logger.Errorf("loading history: %v", err)
		os.Exit(1)
	}

	spot := snap.UnderlyingPriceF()
	closes := history.Closes()
	returns := volatility.LogReturns(closes)

	histVol := volatility.Historical(closes, volatility.TradingDays)
	garchVol := volatility.GarchForecast(returns, 0.1, 0.8)
	gkVol := volatility.GarmanKlass(volatility.LastBars(history, 21))
	parkVol := volatility.Parkinson(volatility.LastBars(history, 21))

	svc := pricing.NewService(cfg.RiskFreeRate)
	scanVol := selectScanVol(svc, snap, spot, cfg.DividendYield, histVol)

	logger.Infof("%s spot %.2f | hist vol %.4f garch %.4f gk %.4f parkinson %.4f scan %.4f",
		snap.Symbol, spot, histVol, garchVol, gkVol, parkVol, scanVol)

	stopMonitor := make(chan struct{})
	go monitorCPU(stopMonitor)

	progress := mpb.New(mpb.WithWidth(64))
	condors := strategy.ScreenIronCondors(snap, cfg.Screen, progress)
	progress.Wait()
	close(stopMonitor)

	coveredCalls := strategy.ScreenCoveredCalls(snap, cfg.Screen)
	csps := strategy.ScreenCashSecuredPuts(snap, cfg.Screen)
	best, sweep := strategy.OptimizeIronCondor(snap, cfg.Screen, cfg.WingWidths)

	logger.Infof("screened %d condors, %d covered calls, %d cash-secured puts",
		len(condors), len(coveredCalls), len(csps))

	topN := cfg.TopN
	if topN <= 0 {
		topN = 10
	}
	if len(condors) > topN {
		condors = condors[:topN]
	}

	scored := simulateAndScore(condors, spot, scanVol, svc.RiskFreeRate, cfg.Simulations)

	rep := report{
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Symbol:          snap.Symbol,
		UnderlyingPrice: spot,
		HistoricalVol:   histVol,
		GarchVol:        garchVol,
		GarmanKlassVol:  gkVol,
		ParkinsonVol:    parkVol,
		ScanVol:         scanVol,
		CoveredCalls:    coveredCalls,
		CashSecuredPuts: csps,
		IronCondors:     scored,
		BestCondor:      best,
		WingSweep:       sweep,
	}

	out, err := json.Marshal(rep)
	if err != nil {
		logger.Errorf("marshalling report: %v", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		logger.Errorf("writing %s: %v", outputPath, err)
		os.Exit(1)
	}

	logger.Infof("wrote %d ranked condors to %s", len(scored), outputPath)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig(path string) (scanConfig, error) {
	cfg := scanConfig{
		RiskFreeRate: pricing.DefaultRiskFreeRate,
		TopN:         10,
		Simulations:  probability.DefaultSimulations,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// selectScanVol backs out the implied volatility of the nearest-to-ATM
// call in the snapshot; historical volatility is the fallback when the
// inversion has nothing usable to work with.
func selectScanVol(svc *pricing.Service, snap *chain.Snapshot, spot, dividendYield, fallback float64) float64 {
	var bestOpt *chain.Option
	bestDist := math.Inf(1)

	for _, exp := range snap.Expirations {
		for i := range exp.Options {
			o := exp.Options[i]
			if o.OptionType != strategy.Call || o.MidPrice() <= 0 {
				continue
			}
			if d := math.Abs(o.StrikeF() - spot); d < bestDist {
				bestDist = d
				bestOpt = &exp.Options[i]
			}
		}
	}
	if bestOpt == nil {
		return fallback
	}

	expiration, err := bestOpt.Expiration()
	if err != nil {
		return fallback
	}
	iv, ok := svc.ImpliedVolFromMarket(bestOpt.MidPrice(), spot, bestOpt.StrikeF(), expiration, bestOpt.OptionType, dividendYield)
	if !ok {
		return fallback
	}
	return iv
}

func simulateAndScore(condors []strategy.Opportunity, spot, sigma, riskFreeRate float64, simulations int) []scoredOpportunity {
	scored := make([]scoredOpportunity, 0, len(condors))
	for _, opp := range condors {
		days := daysToExpiration(opp.Expiration)
		sim := probability.SimulatePayoff(opp.Strategy.Legs, spot, sigma, riskFreeRate, days, simulations)
		scored = append(scored, scoredOpportunity{Opportunity: opp, Simulated: sim})
	}
	if len(scored) == 0 {
		return scored
	}

	// Normalize each metric across the batch before weighting.
	minRoR, maxRoR := math.Inf(1), math.Inf(-1)
	minPoP, maxPoP := math.Inf(1), math.Inf(-1)
	minVaR, maxVaR := math.Inf(1), math.Inf(-1)
	minES, maxES := math.Inf(1), math.Inf(-1)
	for _, s := range scored {
		minRoR = math.Min(minRoR, s.ReturnOnRisk)
		maxRoR = math.Max(maxRoR, s.ReturnOnRisk)
		minPoP = math.Min(minPoP, s.Simulated.ProbabilityOfProfit)
		maxPoP = math.Max(maxPoP, s.Simulated.ProbabilityOfProfit)
		minVaR = math.Min(minVaR, s.Simulated.VaR95)
		maxVaR = math.Max(maxVaR, s.Simulated.VaR95)
		minES = math.Min(minES, s.Simulated.ExpectedShortfall)
		maxES = math.Max(maxES, s.Simulated.ExpectedShortfall)
	}

	for i := range scored {
		s := &scored[i]
		s.CompositeScore = weightReturn*normalize(s.ReturnOnRisk, minRoR, maxRoR) +
			weightProbability*normalize(s.Simulated.ProbabilityOfProfit, minPoP, maxPoP) +
			weightVaR*(1-normalize(s.Simulated.VaR95, minVaR, maxVaR)) +
			weightES*(1-normalize(s.Simulated.ExpectedShortfall, minES, maxES))
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].CompositeScore > scored[j].CompositeScore
	})
	return scored
}

// normalize maps v into [0,1] over [lo,hi]; a degenerate range maps to 1
// so a single-element batch keeps its full weight.
func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}
	return (v - lo) / (hi - lo)
}

func daysToExpiration(date string) int {
	exp, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	days := int(time.Until(exp).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func monitorCPU(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if pct, err := cpu.Percent(time.Second, false); err == nil && len(pct) > 0 {
				logger.Debugf("cpu usage %.2f%%", pct[0])
			}
		}
	}
}
