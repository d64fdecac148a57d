package strategy

// DefaultPayoffPoints is the sample count used when a caller passes a
// non-positive one.
const DefaultPayoffPoints = 100

// PayoffPoint is one sample of a strategy's expiration payoff curve.
type PayoffPoint struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	Payoff          float64 `json:"payoff"`
}

// PayoffDiagram samples the expiration payoff at numPoints+1 evenly
// spaced underlying prices across [minPrice, maxPrice].
func PayoffDiagram(legs []Leg, minPrice, maxPrice float64, numPoints int) []PayoffPoint {
	if numPoints <= 0 {
		numPoints = DefaultPayoffPoints
	}

	step := (maxPrice - minPrice) / float64(numPoints)
	points := make([]PayoffPoint, 0, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		price := minPrice + float64(i)*step
		points = append(points, PayoffPoint{
			UnderlyingPrice: price,
			Payoff:          PayoffAt(legs, price),
		})
	}
	return points
}

// BreakevenPoints finds every underlying price where the sampled payoff
// crosses or touches zero, linearly interpolating between samples.
// Flat zero-width segments are skipped to avoid dividing by zero.
func BreakevenPoints(points []PayoffPoint) []float64 {
	var crossings []float64
	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1].Payoff, points[i].Payoff
		if !((p1 <= 0 && p2 >= 0) || (p1 >= 0 && p2 <= 0)) {
			continue
		}
		if p1 == p2 {
			continue
		}
		x1, x2 := points[i-1].UnderlyingPrice, points[i].UnderlyingPrice
		crossings = append(crossings, x1-p1*(x2-x1)/(p2-p1))
	}
	return crossings
}

// MaxProfitLoss reports the extreme payoffs over the sampled range. A nil
// max profit means unbounded: the payoff was still strictly rising at the
// right edge of the range. This is a sampling heuristic; a strategy whose
// unbounded region begins outside the sampled range will be misclassified
// as capped, so callers should sample generously past the outermost strike.
func MaxProfitLoss(points []PayoffPoint) (maxProfit, maxLoss *float64) {
	if len(points) == 0 {
		return nil, nil
	}

	hi, lo := points[0].Payoff, points[0].Payoff
	for _, p := range points[1:] {
		if p.Payoff > hi {
			hi = p.Payoff
		}
		if p.Payoff < lo {
			lo = p.Payoff
		}
	}

	maxLoss = &lo
	if n := len(points); n >= 2 && points[n-1].Payoff > points[n-2].Payoff {
		return nil, maxLoss
	}
	return &hi, maxLoss
}
