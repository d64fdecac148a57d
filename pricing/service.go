package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/arjunquant/optcore/chain"
	"github.com/arjunquant/optcore/options"
)

// DefaultRiskFreeRate is the annualized rate used when none is configured.
const DefaultRiskFreeRate = 0.05

const hoursPerYear = 24 * 365.25

// Service prices single contracts against a configured risk-free rate.
// Construct one per application context and pass it down; the pricing
// functions themselves are pure.
type Service struct {
	RiskFreeRate float64
}

func NewService(riskFreeRate float64) *Service {
	if riskFreeRate <= 0 {
		riskFreeRate = DefaultRiskFreeRate
	}
	return &Service{RiskFreeRate: riskFreeRate}
}

// Result is a full pricing outcome ready for serialization.
type Result struct {
	TheoreticalPrice  float64        `json:"theoretical_price"`
	IntrinsicValue    float64        `json:"intrinsic_value"`
	TimeValue         float64        `json:"time_value"`
	Greeks            options.Greeks `json:"greeks"`
	ImpliedVolatility *float64       `json:"implied_volatility,omitempty"`
}

// TimeToExpiration returns years until expiration on a 365.25-day year,
// floored at zero. Zone-aware expirations are handled by time.Until.
func (s *Service) TimeToExpiration(expiration time.Time) float64 {
	return math.Max(time.Until(expiration).Hours()/hoursPerYear, 0)
}

// IntrinsicValue is the immediate exercise value of an option.
func IntrinsicValue(S, K float64, optionType string) float64 {
	if options.IsCall(optionType) {
		return math.Max(S-K, 0)
	}
	return math.Max(K-S, 0)
}

// PriceOption prices a contract and computes its Greeks. A continuous
// dividend yield q discounts the spot for the Black-Scholes inputs
// (S*e^(-qT)); intrinsic value always uses the raw spot.
func (s *Service) PriceOption(S, K float64, expiration time.Time, optionType string, sigma, dividendYield float64) (Result, error) {
	if S <= 0 || K <= 0 {
		return Result{}, fmt.Errorf("non-positive spot %.4f or strike %.4f", S, K)
	}

	T := s.TimeToExpiration(expiration)
	if T > 0 && sigma <= 0 {
		return Result{}, fmt.Errorf("non-positive volatility %.4f", sigma)
	}

	adjS := S * math.Exp(-dividendYield*T)

	theo := options.Price(adjS, K, T, s.RiskFreeRate, sigma, optionType)
	greeks := options.ComputeGreeks(adjS, K, T, s.RiskFreeRate, sigma, optionType)
	intrinsic := IntrinsicValue(S, K, optionType)

	return Result{
		TheoreticalPrice: theo,
		IntrinsicValue:   intrinsic,
		TimeValue:        math.Max(theo-intrinsic, 0),
		Greeks:           greeks,
	}, nil
}

// ImpliedVolFromMarket backs out the volatility implied by an observed
// market price, with the same dividend adjustment as PriceOption.
// ok is false for expired contracts and non-convergent inversions.
func (s *Service) ImpliedVolFromMarket(marketPrice, S, K float64, expiration time.Time, optionType string, dividendYield float64) (float64, bool) {
	T := s.TimeToExpiration(expiration)
	if T <= 0 {
		return 0, false
	}

	adjS := S * math.Exp(-dividendYield*T)
	return options.ImpliedVolatility(marketPrice, adjS, K, T, s.RiskFreeRate, optionType)
}

// PriceFromMarket backs implied volatility out of an observed market
// price and prices the contract with it, mirroring how a chain scan
// treats each quoted leg.
func (s *Service) PriceFromMarket(marketPrice, S, K float64, expiration time.Time, optionType string, dividendYield float64) (Result, error) {
	iv, ok := s.ImpliedVolFromMarket(marketPrice, S, K, expiration, optionType, dividendYield)
	if !ok {
		return Result{}, fmt.Errorf("implied volatility did not converge for market price %.4f", marketPrice)
	}

	res, err := s.PriceOption(S, K, expiration, optionType, iv, dividendYield)
	if err != nil {
		return Result{}, err
	}
	res.ImpliedVolatility = &iv
	return res, nil
}

// UpdateContract recomputes a caller-owned contract record in place.
// When the record carries a positive last-traded price, the volatility
// implied by that price overrides the passed-in sigma. The record is
// only overwritten when some usable volatility is in hand, so stale
// records survive a bad quote untouched.
func (s *Service) UpdateContract(c *chain.Contract, underlyingPrice, sigma float64) error {
	K := c.StrikeF()
	if underlyingPrice <= 0 || K <= 0 {
		return fmt.Errorf("contract %s: non-positive spot %.4f or strike %.4f", c.Symbol, underlyingPrice, K)
	}

	if last := c.LastPriceF(); last > 0 {
		if iv, ok := s.ImpliedVolFromMarket(last, underlyingPrice, K, c.Expiration, c.OptionType, c.DividendYield); ok {
			sigma = iv
			c.ImpliedVolatility = iv
		}
	}

	if sigma <= 0 {
		T := s.TimeToExpiration(c.Expiration)
		if T > 0 {
			return nil
		}
		// Expired contracts price off intrinsic regardless of sigma.
	}

	res, err := s.PriceOption(underlyingPrice, K, c.Expiration, c.OptionType, sigma, c.DividendYield)
	if err != nil {
		return err
	}

	c.TheoreticalPrice = res.TheoreticalPrice
	c.IntrinsicValue = res.IntrinsicValue
	c.TimeValue = res.TimeValue
	c.Delta = res.Greeks.Delta
	c.Gamma = res.Greeks.Gamma
	c.Theta = res.Greeks.Theta
	c.Vega = res.Greeks.Vega
	c.Rho = res.Greeks.Rho
	return nil
}
