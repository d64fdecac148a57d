package chain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one daily OHLC candle for the underlying.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

type History struct {
	Symbol string `json:"symbol"`
	Day    []Bar  `json:"day"`
}

// QuoteGreeks carries the Greeks and implied vols published with a quote.
// These come from the data vendor, not from our own pricing.
type QuoteGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
	BidIv float64 `json:"bid_iv"`
	MidIv float64 `json:"mid_iv"`
	AskIv float64 `json:"ask_iv"`
}

// Option is a single quoted contract in a chain snapshot. Money fields are
// decimals as delivered on the wire; convert at the math boundary.
type Option struct {
	Symbol         string          `json:"symbol"`
	Underlying     string          `json:"underlying"`
	OptionType     string          `json:"option_type"`
	Strike         decimal.Decimal `json:"strike"`
	ExpirationDate string          `json:"expiration_date"`
	Bid            decimal.Decimal `json:"bid"`
	Ask            decimal.Decimal `json:"ask"`
	Last           decimal.Decimal `json:"last"`
	Volume         int             `json:"volume"`
	OpenInterest   int             `json:"open_interest"`
	ContractSize   int             `json:"contract_size"`
	Greeks         QuoteGreeks     `json:"greeks"`
}

// StrikeF returns the strike as a float64 for pricing math.
func (o Option) StrikeF() float64 {
	f, _ := o.Strike.Float64()
	return f
}

func (o Option) BidF() float64 {
	f, _ := o.Bid.Float64()
	return f
}

func (o Option) AskF() float64 {
	f, _ := o.Ask.Float64()
	return f
}

// MidPrice returns the bid/ask midpoint as a float64.
func (o Option) MidPrice() float64 {
	mid := o.Bid.Add(o.Ask).Div(decimal.NewFromInt(2))
	f, _ := mid.Float64()
	return f
}

// Expiration parses the contract's expiration date. NSE contracts expire
// at 15:30 IST; the session close is appended so time-to-expiry does not
// round down to zero on expiry morning.
func (o Option) Expiration() (time.Time, error) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.ParseInLocation("2006-01-02", o.ExpirationDate, loc)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(15*time.Hour + 30*time.Minute), nil
}

type ExpirationChain struct {
	Options []Option `json:"options"`
}

// Snapshot is one point-in-time options chain for a single underlying,
// keyed by expiration date (2006-01-02).
type Snapshot struct {
	Symbol          string                      `json:"symbol"`
	UnderlyingPrice decimal.Decimal             `json:"underlying_price"`
	AsOf            string                      `json:"as_of"`
	Expirations     map[string]*ExpirationChain `json:"expirations"`
}

func (s *Snapshot) UnderlyingPriceF() float64 {
	f, _ := s.UnderlyingPrice.Float64()
	return f
}

// Contract is a mutable pricing record owned by the caller (typically a
// row the API layer is about to serve). UpdateContract overwrites the
// model-derived fields in place; everything else is caller data.
type Contract struct {
	Symbol        string          `json:"symbol"`
	OptionType    string          `json:"option_type"`
	Strike        decimal.Decimal `json:"strike"`
	Expiration    time.Time       `json:"expiration"`
	LastPrice     decimal.Decimal `json:"last_price"`
	DividendYield float64         `json:"dividend_yield"`

	TheoreticalPrice  float64 `json:"theoretical_price"`
	IntrinsicValue    float64 `json:"intrinsic_value"`
	TimeValue         float64 `json:"time_value"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	Delta             float64 `json:"delta"`
	Gamma             float64 `json:"gamma"`
	Theta             float64 `json:"theta"`
	Vega              float64 `json:"vega"`
	Rho               float64 `json:"rho"`
}

func (c *Contract) StrikeF() float64 {
	f, _ := c.Strike.Float64()
	return f
}

func (c *Contract) LastPriceF() float64 {
	f, _ := c.LastPrice.Float64()
	return f
}
