package strategy

import "fmt"

// Market outlook labels.
const (
	OutlookBullish  = "bullish"
	OutlookBearish  = "bearish"
	OutlookNeutral  = "neutral"
	OutlookVolatile = "volatile"
)

// Definition is a declarative multi-leg strategy. MaxProfit and MaxLoss
// are nil when unbounded or not determinable in closed form; CostBasis is
// a net debit when positive and a net credit when negative.
type Definition struct {
	StrategyType     string    `json:"strategy_type"`
	UnderlyingSymbol string    `json:"underlying_symbol"`
	Legs             []Leg     `json:"legs"`
	MarketOutlook    string    `json:"market_outlook"`
	MaxProfit        *float64  `json:"max_profit"`
	MaxLoss          *float64  `json:"max_loss"`
	BreakevenPoints  []float64 `json:"breakeven_points"`
	CostBasis        float64   `json:"cost_basis"`
}

func ptr(f float64) *float64 { return &f }

func optionLeg(optionType, side string, strike, premium float64, expiration string) Leg {
	return Leg{
		OptionType:     optionType,
		Side:           side,
		Quantity:       1,
		StrikePrice:    strike,
		ExpirationDate: expiration,
		Premium:        premium,
	}
}

func stockLeg(side string, entryPrice float64) Leg {
	return Leg{OptionType: Stock, Side: side, Quantity: 1, Premium: entryPrice}
}

// LongStraddle buys a call and a put at the same strike and expiration.
func LongStraddle(symbol, expiration string, strike, callPremium, putPremium float64) Definition {
	cost := callPremium + putPremium
	return Definition{
		StrategyType:     "long_straddle",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Call, Long, strike, callPremium, expiration),
			optionLeg(Put, Long, strike, putPremium, expiration),
		},
		MarketOutlook:   OutlookVolatile,
		MaxProfit:       nil, // unbounded above
		MaxLoss:         ptr(cost),
		BreakevenPoints: []float64{strike - cost, strike + cost},
		CostBasis:       cost,
	}
}

// ShortStraddle sells a call and a put at the same strike and expiration.
func ShortStraddle(symbol, expiration string, strike, callPremium, putPremium float64) Definition {
	credit := callPremium + putPremium
	return Definition{
		StrategyType:     "short_straddle",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Call, Short, strike, callPremium, expiration),
			optionLeg(Put, Short, strike, putPremium, expiration),
		},
		MarketOutlook:   OutlookNeutral,
		MaxProfit:       ptr(credit),
		MaxLoss:         nil, // unbounded above
		BreakevenPoints: []float64{strike - credit, strike + credit},
		CostBasis:       -credit,
	}
}

// LongStrangle buys an OTM put below an OTM call.
func LongStrangle(symbol, expiration string, putStrike, callStrike, putPremium, callPremium float64) (Definition, error) {
	if callStrike <= putStrike {
		return Definition{}, fmt.Errorf("strangle requires call strike %.2f above put strike %.2f", callStrike, putStrike)
	}
	cost := callPremium + putPremium
	return Definition{
		StrategyType:     "long_strangle",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Long, putStrike, putPremium, expiration),
			optionLeg(Call, Long, callStrike, callPremium, expiration),
		},
		MarketOutlook:   OutlookVolatile,
		MaxProfit:       nil,
		MaxLoss:         ptr(cost),
		BreakevenPoints: []float64{putStrike - cost, callStrike + cost},
		CostBasis:       cost,
	}, nil
}

// ShortStrangle sells an OTM put below an OTM call.
func ShortStrangle(symbol, expiration string, putStrike, callStrike, putPremium, callPremium float64) (Definition, error) {
	if callStrike <= putStrike {
		return Definition{}, fmt.Errorf("strangle requires call strike %.2f above put strike %.2f", callStrike, putStrike)
	}
	credit := callPremium + putPremium
	return Definition{
		StrategyType:     "short_strangle",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Short, putStrike, putPremium, expiration),
			optionLeg(Call, Short, callStrike, callPremium, expiration),
		},
		MarketOutlook:   OutlookNeutral,
		MaxProfit:       ptr(credit),
		MaxLoss:         nil,
		BreakevenPoints: []float64{putStrike - credit, callStrike + credit},
		CostBasis:       -credit,
	}, nil
}

// BullCallSpread buys the lower strike call and sells the higher one.
func BullCallSpread(symbol, expiration string, longStrike, shortStrike, longPremium, shortPremium float64) (Definition, error) {
	if shortStrike <= longStrike {
		return Definition{}, fmt.Errorf("bull call spread requires short strike %.2f above long strike %.2f", shortStrike, longStrike)
	}
	netCost := longPremium - shortPremium
	return Definition{
		StrategyType:     "bull_call_spread",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Call, Long, longStrike, longPremium, expiration),
			optionLeg(Call, Short, shortStrike, shortPremium, expiration),
		},
		MarketOutlook:   OutlookBullish,
		MaxProfit:       ptr((shortStrike - longStrike) - netCost),
		MaxLoss:         ptr(netCost),
		BreakevenPoints: []float64{longStrike + netCost},
		CostBasis:       netCost,
	}, nil
}

// BearPutSpread buys the higher strike put and sells the lower one.
func BearPutSpread(symbol, expiration string, longStrike, shortStrike, longPremium, shortPremium float64) (Definition, error) {
	if shortStrike >= longStrike {
		return Definition{}, fmt.Errorf("bear put spread requires short strike %.2f below long strike %.2f", shortStrike, longStrike)
	}
	netCost := longPremium - shortPremium
	return Definition{
		StrategyType:     "bear_put_spread",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Long, longStrike, longPremium, expiration),
			optionLeg(Put, Short, shortStrike, shortPremium, expiration),
		},
		MarketOutlook:   OutlookBearish,
		MaxProfit:       ptr((longStrike - shortStrike) - netCost),
		MaxLoss:         ptr(netCost),
		BreakevenPoints: []float64{longStrike - netCost},
		CostBasis:       netCost,
	}, nil
}

// IronButterfly sells a straddle at the body strike and buys wings on
// both sides. Premiums follow leg order: long put wing, short put body,
// short call body, long call wing.
func IronButterfly(symbol, expiration string, lowerWing, body, upperWing float64, longPutPremium, shortPutPremium, shortCallPremium, longCallPremium float64) (Definition, error) {
	if !(lowerWing < body && body < upperWing) {
		return Definition{}, fmt.Errorf("iron butterfly requires strikes in order %.2f < %.2f < %.2f", lowerWing, body, upperWing)
	}
	credit := shortPutPremium + shortCallPremium - longPutPremium - longCallPremium
	maxWidth := max(body-lowerWing, upperWing-body)
	return Definition{
		StrategyType:     "iron_butterfly",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Long, lowerWing, longPutPremium, expiration),
			optionLeg(Put, Short, body, shortPutPremium, expiration),
			optionLeg(Call, Short, body, shortCallPremium, expiration),
			optionLeg(Call, Long, upperWing, longCallPremium, expiration),
		},
		MarketOutlook:   OutlookNeutral,
		MaxProfit:       ptr(credit),
		MaxLoss:         ptr(maxWidth - credit),
		BreakevenPoints: []float64{body - credit, body + credit},
		CostBasis:       -credit,
	}, nil
}

// IronCondor sells an OTM put spread and an OTM call spread.
func IronCondor(symbol, expiration string, putWing, putShort, callShort, callWing float64, longPutPremium, shortPutPremium, shortCallPremium, longCallPremium float64) (Definition, error) {
	if !(putWing < putShort && putShort < callShort && callShort < callWing) {
		return Definition{}, fmt.Errorf("iron condor requires strikes in order %.2f < %.2f < %.2f < %.2f", putWing, putShort, callShort, callWing)
	}
	credit := shortPutPremium + shortCallPremium - longPutPremium - longCallPremium
	maxWidth := max(putShort-putWing, callWing-callShort)
	return Definition{
		StrategyType:     "iron_condor",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Long, putWing, longPutPremium, expiration),
			optionLeg(Put, Short, putShort, shortPutPremium, expiration),
			optionLeg(Call, Short, callShort, shortCallPremium, expiration),
			optionLeg(Call, Long, callWing, longCallPremium, expiration),
		},
		MarketOutlook:   OutlookNeutral,
		MaxProfit:       ptr(credit),
		MaxLoss:         ptr(maxWidth - credit),
		BreakevenPoints: []float64{putShort - credit, callShort + credit},
		CostBasis:       -credit,
	}, nil
}

// CalendarSpread sells the near expiration and buys the far one at the
// same strike. The payoff shape before the far expiry is not piecewise
// linear, so no closed-form extremes or breakevens are reported; use the
// numeric payoff diagram if an approximation is acceptable.
func CalendarSpread(symbol, optionType string, strike float64, nearExpiration, farExpiration string, nearPremium, farPremium float64) Definition {
	netCost := farPremium - nearPremium
	return Definition{
		StrategyType:     "calendar_spread",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(optionType, Short, strike, nearPremium, nearExpiration),
			optionLeg(optionType, Long, strike, farPremium, farExpiration),
		},
		MarketOutlook: OutlookNeutral,
		CostBasis:     netCost,
	}
}

// DiagonalSpread is a calendar spread with different strikes per expiry.
func DiagonalSpread(symbol, optionType string, nearStrike, farStrike float64, nearExpiration, farExpiration string, nearPremium, farPremium float64) Definition {
	netCost := farPremium - nearPremium
	return Definition{
		StrategyType:     "diagonal_spread",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(optionType, Short, nearStrike, nearPremium, nearExpiration),
			optionLeg(optionType, Long, farStrike, farPremium, farExpiration),
		},
		MarketOutlook: OutlookNeutral,
		CostBasis:     netCost,
	}
}

// Collar holds stock, buys a protective put below and sells a covered
// call above. Extremes depend on the stock entry relative to both
// strikes, so they are left to the numeric payoff diagram.
func Collar(symbol, expiration string, stockPrice, putStrike, callStrike, putPremium, callPremium float64) (Definition, error) {
	if callStrike <= putStrike {
		return Definition{}, fmt.Errorf("collar requires call strike %.2f above put strike %.2f", callStrike, putStrike)
	}
	netCost := stockPrice + putPremium - callPremium
	return Definition{
		StrategyType:     "collar",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			stockLeg(Long, stockPrice),
			optionLeg(Put, Long, putStrike, putPremium, expiration),
			optionLeg(Call, Short, callStrike, callPremium, expiration),
		},
		MarketOutlook: OutlookNeutral,
		CostBasis:     netCost,
	}, nil
}

// CoveredCall holds stock and sells a call against it.
func CoveredCall(symbol, expiration string, stockPrice, callStrike, callPremium float64) Definition {
	return Definition{
		StrategyType:     "covered_call",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			stockLeg(Long, stockPrice),
			optionLeg(Call, Short, callStrike, callPremium, expiration),
		},
		MarketOutlook:   OutlookNeutral,
		MaxProfit:       ptr((callStrike - stockPrice) + callPremium),
		MaxLoss:         ptr(stockPrice - callPremium),
		BreakevenPoints: []float64{stockPrice - callPremium},
		CostBasis:       stockPrice - callPremium,
	}
}

// CashSecuredPut sells a put backed by cash for the full strike.
func CashSecuredPut(symbol, expiration string, putStrike, putPremium float64) Definition {
	return Definition{
		StrategyType:     "cash_secured_put",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Short, putStrike, putPremium, expiration),
		},
		MarketOutlook:   OutlookBullish,
		MaxProfit:       ptr(putPremium),
		MaxLoss:         ptr(putStrike - putPremium),
		BreakevenPoints: []float64{putStrike - putPremium},
		CostBasis:       -putPremium,
	}
}

// JadeLizard sells a put and a call spread for a combined credit. When
// the credit covers the call spread width there is no risk above the
// short call; the open downside keeps MaxLoss nil.
func JadeLizard(symbol, expiration string, putStrike, shortCallStrike, longCallStrike float64, putPremium, shortCallPremium, longCallPremium float64) (Definition, error) {
	if !(putStrike < shortCallStrike && shortCallStrike < longCallStrike) {
		return Definition{}, fmt.Errorf("jade lizard requires strikes in order %.2f < %.2f < %.2f", putStrike, shortCallStrike, longCallStrike)
	}
	credit := putPremium + shortCallPremium - longCallPremium
	return Definition{
		StrategyType:     "jade_lizard",
		UnderlyingSymbol: symbol,
		Legs: []Leg{
			optionLeg(Put, Short, putStrike, putPremium, expiration),
			optionLeg(Call, Short, shortCallStrike, shortCallPremium, expiration),
			optionLeg(Call, Long, longCallStrike, longCallPremium, expiration),
		},
		MarketOutlook:   OutlookNeutral,
		MaxProfit:       ptr(credit),
		MaxLoss:         nil, // downside open to the full put strike
		BreakevenPoints: []float64{putStrike - credit},
		CostBasis:       -credit,
	}, nil
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
