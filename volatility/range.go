package volatility

import (
	"math"

	"github.com/arjunquant/optcore/chain"
)

// Parkinson estimates annualized volatility from the high/low range of
// daily bars. It ignores the open/close and so understates volatility in
// trending markets; Garman-Klass corrects for that.
func Parkinson(bars []chain.Bar) float64 {
	n := len(bars)
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		if b.Low <= 0 || b.High < b.Low {
			return 0
		}
		logRatio := math.Log(b.High / b.Low)
		sum += logRatio * logRatio
	}

	daily := math.Sqrt(sum / (4 * float64(n) * math.Log(2)))
	return daily * math.Sqrt(TradingDays)
}

// GarmanKlass estimates annualized volatility from daily OHLC bars.
func GarmanKlass(bars []chain.Bar) float64 {
	n := len(bars)
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		if b.Low <= 0 || b.Open <= 0 {
			return 0
		}
		hl := 0.5 * math.Pow(math.Log(b.High/b.Low), 2)
		co := (2*math.Log(2) - 1) * math.Pow(math.Log(b.Close/b.Open), 2)
		sum += hl - co
	}

	return math.Sqrt(sum / float64(n) * TradingDays)
}

// RogersSatchell estimates annualized volatility from OHLC bars. Unlike
// Parkinson and Garman-Klass it stays unbiased under a nonzero drift.
func RogersSatchell(bars []chain.Bar) float64 {
	n := len(bars)
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		if b.Open <= 0 || b.Low <= 0 || b.Close <= 0 {
			return 0
		}
		sum += math.Log(b.High/b.Close)*math.Log(b.High/b.Open) +
			math.Log(b.Low/b.Close)*math.Log(b.Low/b.Open)
	}

	return math.Sqrt(sum / float64(n) * TradingDays)
}

// YangZhang combines overnight, open-to-close and Rogers-Satchell
// variance into the minimum-variance OHLC estimator.
func YangZhang(bars []chain.Bar) float64 {
	n := len(bars)
	if n < 2 {
		return 0
	}
	for _, b := range bars {
		if b.Open <= 0 || b.Low <= 0 || b.Close <= 0 {
			return 0
		}
	}

	k := 0.34 / (1.34 + (float64(n)+1)/(float64(n)-1))

	// Overnight variance: close-to-open jumps.
	overnight := 0.0
	mean := 0.0
	for i := 1; i < n; i++ {
		r := math.Log(bars[i].Open / bars[i-1].Close)
		mean += r
		overnight += r * r
	}
	mean /= float64(n - 1)
	overnight = (overnight/float64(n-1) - mean*mean) * float64(n) / float64(n-1)

	// Open-to-close variance.
	openClose := 0.0
	mean = 0.0
	for _, b := range bars {
		r := math.Log(b.Close / b.Open)
		mean += r
		openClose += r * r
	}
	mean /= float64(n)
	openClose = (openClose/float64(n) - mean*mean) * float64(n) / float64(n-1)

	// Rogers-Satchell daily variance, unannualized.
	rs := 0.0
	for _, b := range bars {
		rs += math.Log(b.High/b.Close)*math.Log(b.High/b.Open) +
			math.Log(b.Low/b.Close)*math.Log(b.Low/b.Open)
	}
	rs /= float64(n)

	return math.Sqrt(overnight+k*openClose+(1-k)*rs) * math.Sqrt(TradingDays)
}

// LastBars returns the trailing n bars of a history, or all of them when
// fewer are available.
func LastBars(h *chain.History, n int) []chain.Bar {
	if len(h.Day) <= n {
		return h.Day
	}
	return h.Day[len(h.Day)-n:]
}
