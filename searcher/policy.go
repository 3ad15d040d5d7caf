package searcher

import (
	"math"
	"time"
)

type uct struct {
	numerator float64
}

// newUCT precomputes c^2*ln(N) for a parent with N visits.
func newUCT(c float64, N int) uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{numerator: c * c * math.Log(float64(N))}
}

func (u uct) evaluate(q float64, n int) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/float64(n) + math.Sqrt(u.numerator/float64(n))
}

// budget converts the time left on the clock into this turn's search time.
func budget(remaining time.Duration) time.Duration {
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining) * float64(BudgetPerMinute) / float64(time.Minute))
}
