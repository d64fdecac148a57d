package strategy

import (
	"math"
	"sort"
	"testing"

	"github.com/arjunquant/optcore/options"
)

func TestPayoffAtSingleLegs(t *testing.T) {
	longCall := []Leg{{OptionType: Call, Side: Long, Quantity: 1, StrikePrice: 100, Premium: 5}}
	if got := PayoffAt(longCall, 110); got != 5 {
		t.Fatalf("long call at 110: got %f, want 5", got)
	}
	if got := PayoffAt(longCall, 90); got != -5 {
		t.Fatalf("long call at 90: got %f, want -5", got)
	}

	shortPut := []Leg{{OptionType: Put, Side: Short, Quantity: 1, StrikePrice: 100, Premium: 4}}
	if got := PayoffAt(shortPut, 110); got != 4 {
		t.Fatalf("short put at 110: got %f, want 4", got)
	}
	if got := PayoffAt(shortPut, 80); got != -16 {
		t.Fatalf("short put at 80: got %f, want -16", got)
	}

	// Two contracts scale linearly.
	longCall[0].Quantity = 2
	if got := PayoffAt(longCall, 110); got != 10 {
		t.Fatalf("2x long call at 110: got %f, want 10", got)
	}
}

func TestPayoffAtStockLeg(t *testing.T) {
	covered := []Leg{
		{OptionType: Stock, Side: Long, Quantity: 1, Premium: 100},
		{OptionType: Call, Side: Short, Quantity: 1, StrikePrice: 105, Premium: 3},
	}
	// Above the strike the stock gain is capped by the short call.
	if got := PayoffAt(covered, 120); math.Abs(got-8) > 1e-12 {
		t.Fatalf("covered call at 120: got %f, want 8", got)
	}
	// Below the strike only the premium cushions the stock loss.
	if got := PayoffAt(covered, 90); math.Abs(got-(-7)) > 1e-12 {
		t.Fatalf("covered call at 90: got %f, want -7", got)
	}
}

func TestPayoffDiagramSampling(t *testing.T) {
	legs := []Leg{{OptionType: Call, Side: Long, Quantity: 1, StrikePrice: 100, Premium: 5}}

	points := PayoffDiagram(legs, 50, 150, 100)
	if len(points) != 101 {
		t.Fatalf("point count: got %d, want 101", len(points))
	}
	if points[0].UnderlyingPrice != 50 || points[100].UnderlyingPrice != 150 {
		t.Fatalf("range endpoints: %f .. %f", points[0].UnderlyingPrice, points[100].UnderlyingPrice)
	}

	// Non-positive count falls back to the default.
	def := PayoffDiagram(legs, 50, 150, 0)
	if len(def) != DefaultPayoffPoints+1 {
		t.Fatalf("default point count: got %d", len(def))
	}
}

func TestStraddleBreakevens(t *testing.T) {
	d := LongStraddle("NIFTY", "2026-09-25", 100, 4, 3)

	// A sampling range whose grid does not land exactly on the breakevens.
	points := PayoffDiagram(d.Legs, 50, 151, 100)
	crossings := BreakevenPoints(points)
	if len(crossings) != 2 {
		t.Fatalf("crossing count: got %d (%v), want 2", len(crossings), crossings)
	}
	sort.Float64s(crossings)

	if math.Abs(crossings[0]-93) > 0.01 {
		t.Fatalf("lower breakeven: got %f, want ~93", crossings[0])
	}
	if math.Abs(crossings[1]-107) > 0.01 {
		t.Fatalf("upper breakeven: got %f, want ~107", crossings[1])
	}
}

func TestBreakevenSkipsFlatSegments(t *testing.T) {
	points := []PayoffPoint{
		{UnderlyingPrice: 90, Payoff: 0},
		{UnderlyingPrice: 95, Payoff: 0},
		{UnderlyingPrice: 100, Payoff: 5},
	}
	crossings := BreakevenPoints(points)
	if len(crossings) != 1 {
		t.Fatalf("crossing count: got %d, want 1", len(crossings))
	}
	if crossings[0] != 95 {
		t.Fatalf("crossing: got %f, want 95", crossings[0])
	}
}

func TestMaxProfitLossUnbounded(t *testing.T) {
	longCall := []Leg{{OptionType: Call, Side: Long, Quantity: 1, StrikePrice: 100, Premium: 5}}
	points := PayoffDiagram(longCall, 50, 200, 100)

	maxProfit, maxLoss := MaxProfitLoss(points)
	if maxProfit != nil {
		t.Fatalf("long call max profit should be unbounded, got %f", *maxProfit)
	}
	if maxLoss == nil || *maxLoss != -5 {
		t.Fatalf("long call max loss: got %v, want -5", maxLoss)
	}
}

func TestMaxProfitLossCapped(t *testing.T) {
	d, err := IronCondor("NIFTY", "2026-09-25", 90, 95, 105, 110, 0.5, 2, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	points := PayoffDiagram(d.Legs, 70, 130, 120)

	maxProfit, maxLoss := MaxProfitLoss(points)
	if maxProfit == nil {
		t.Fatal("condor max profit should be capped")
	}
	if math.Abs(*maxProfit-3) > 1e-9 {
		t.Fatalf("condor max profit: got %f, want 3", *maxProfit)
	}
	if maxLoss == nil || math.Abs(*maxLoss-(-2)) > 1e-9 {
		t.Fatalf("condor max loss: got %v, want -2", maxLoss)
	}
}

func TestNetGreeksCancellation(t *testing.T) {
	legs := []Leg{
		{OptionType: Call, Side: Long, Quantity: 1, Greeks: options.Greeks{Delta: 0.5, Gamma: 0.02, Vega: 0.11}},
		{OptionType: Call, Side: Short, Quantity: 1, Greeks: options.Greeks{Delta: 0.5, Gamma: 0.02, Vega: 0.11}},
	}
	net := NetGreeks(legs)
	if net.Delta != 0 || net.Gamma != 0 || net.Vega != 0 {
		t.Fatalf("offsetting legs should net to zero: %+v", net)
	}
}

func TestNetGreeksQuantityWeighting(t *testing.T) {
	legs := []Leg{
		{OptionType: Call, Side: Long, Quantity: 2, Greeks: options.Greeks{Delta: 0.4, Theta: -0.03}},
		{OptionType: Put, Side: Short, Quantity: 1, Greeks: options.Greeks{Delta: -0.3, Theta: -0.02}},
	}
	net := NetGreeks(legs)
	if math.Abs(net.Delta-1.1) > 1e-12 {
		t.Fatalf("net delta: got %f, want 1.1", net.Delta)
	}
	if math.Abs(net.Theta-(-0.04)) > 1e-12 {
		t.Fatalf("net theta: got %f, want -0.04", net.Theta)
	}
}
