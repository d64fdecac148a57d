package options

import (
	"math"
	"testing"
)

func closeEnough(t *testing.T, got, want, tol float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %f, want %f (tol %g)", label, got, want, tol)
	}
}

// Standard reference scenario: S=100, K=100, T=0.25, r=0.05, sigma=0.2.
func TestATMCallReference(t *testing.T) {
	price := CallPrice(100, 100, 0.25, 0.05, 0.2)
	closeEnough(t, price, 4.615, 0.01, "ATM call price")

	greeks := ComputeGreeks(100, 100, 0.25, 0.05, 0.2, "call")
	closeEnough(t, greeks.Delta, 0.546, 0.005, "ATM call delta")
}

func TestPutCallParity(t *testing.T) {
	cases := []struct {
		S, K, T, r, sigma float64
	}{
		{100, 100, 0.25, 0.05, 0.2},
		{22500, 22600, 0.08, 0.065, 0.14},
		{80, 120, 1.5, 0.03, 0.6},
	}

	for _, c := range cases {
		call := CallPrice(c.S, c.K, c.T, c.r, c.sigma)
		put := PutPrice(c.S, c.K, c.T, c.r, c.sigma)
		parity := c.S - c.K*math.Exp(-c.r*c.T)
		if math.Abs((call-put)-parity) > 1e-9 {
			t.Fatalf("parity violated for %+v: call-put=%f, S-Ke^(-rT)=%f", c, call-put, parity)
		}
	}
}

func TestBoundaryConvergence(t *testing.T) {
	// As T -> 0+ prices converge on intrinsic value.
	for _, T := range []float64{1e-3, 1e-5, 1e-7} {
		call := CallPrice(110, 100, T, 0.05, 0.2)
		if math.Abs(call-10) > 0.2 {
			t.Fatalf("call at T=%g: got %f, want near 10", T, call)
		}
		put := PutPrice(90, 100, T, 0.05, 0.2)
		if math.Abs(put-10) > 0.2 {
			t.Fatalf("put at T=%g: got %f, want near 10", T, put)
		}
	}
}

func TestExpiredOption(t *testing.T) {
	if got := CallPrice(110, 100, 0, 0.05, 0.2); got != 10 {
		t.Fatalf("expired ITM call price: got %f, want 10", got)
	}
	if got := PutPrice(110, 100, 0, 0.05, 0.2); got != 0 {
		t.Fatalf("expired OTM put price: got %f, want 0", got)
	}

	g := ComputeGreeks(110, 100, 0, 0.05, 0.2, "call")
	if g.Delta != 1 || g.Gamma != 0 || g.Theta != 0 || g.Vega != 0 || g.Rho != 0 {
		t.Fatalf("expired ITM call greeks: got %+v, want delta=1 rest 0", g)
	}

	g = ComputeGreeks(90, 100, 0, 0.05, 0.2, "put")
	if g.Delta != -1 {
		t.Fatalf("expired ITM put delta: got %f, want -1", g.Delta)
	}
	g = ComputeGreeks(110, 100, 0, 0.05, 0.2, "put")
	if g.Delta != 0 {
		t.Fatalf("expired OTM put delta: got %f, want 0", g.Delta)
	}
}

func TestCallMonotonicInSpotAndVol(t *testing.T) {
	prev := 0.0
	for S := 80.0; S <= 120; S += 5 {
		p := CallPrice(S, 100, 0.5, 0.05, 0.25)
		if p < prev {
			t.Fatalf("call price decreased in S at %f: %f < %f", S, p, prev)
		}
		prev = p
	}

	prev = 0.0
	for sigma := 0.05; sigma <= 1.0; sigma += 0.05 {
		p := CallPrice(100, 100, 0.5, 0.05, sigma)
		if p < prev {
			t.Fatalf("call price decreased in sigma at %f: %f < %f", sigma, p, prev)
		}
		prev = p
	}
}

func TestPutMonotonicInStrikeAndVol(t *testing.T) {
	prev := 0.0
	for K := 80.0; K <= 120; K += 5 {
		p := PutPrice(100, K, 0.5, 0.05, 0.25)
		if p < prev {
			t.Fatalf("put price decreased in K at %f: %f < %f", K, p, prev)
		}
		prev = p
	}

	prev = 0.0
	for sigma := 0.05; sigma <= 1.0; sigma += 0.05 {
		p := PutPrice(100, 100, 0.5, 0.05, sigma)
		if p < prev {
			t.Fatalf("put price decreased in sigma at %f: %f < %f", sigma, p, prev)
		}
		prev = p
	}
}

func TestGreekRanges(t *testing.T) {
	for _, K := range []float64{70, 90, 100, 110, 130} {
		cg := ComputeGreeks(100, K, 0.3, 0.05, 0.25, "call")
		if cg.Delta < 0 || cg.Delta > 1 {
			t.Fatalf("call delta out of [0,1] at K=%f: %f", K, cg.Delta)
		}
		pg := ComputeGreeks(100, K, 0.3, 0.05, 0.25, "put")
		if pg.Delta < -1 || pg.Delta > 0 {
			t.Fatalf("put delta out of [-1,0] at K=%f: %f", K, pg.Delta)
		}
		if cg.Gamma < 0 || pg.Gamma < 0 {
			t.Fatalf("negative gamma at K=%f", K)
		}
		if cg.Gamma != pg.Gamma {
			t.Fatalf("gamma differs between call and put at K=%f", K)
		}
		if cg.Vega <= 0 {
			t.Fatalf("non-positive vega at K=%f", K)
		}
	}
}

func TestGreekScaling(t *testing.T) {
	// Vega must be the raw derivative divided by 100, theta per day.
	S, K, T, r, sigma := 100.0, 100.0, 0.25, 0.05, 0.2
	g := ComputeGreeks(S, K, T, r, sigma, "call")

	raw := RawVega(S, K, T, r, sigma)
	closeEnough(t, g.Vega, raw/100, 1e-12, "vega scaling")

	// Finite-difference annual theta against the per-day figure.
	dt := 1e-5
	annual := (CallPrice(S, K, T-dt, r, sigma) - CallPrice(S, K, T, r, sigma)) / dt
	closeEnough(t, g.Theta, annual/365, 1e-3, "theta per day")
}
