package advisor

import (
	"math"
	"sort"
)

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// pstdev is the population standard deviation; 0 for fewer than two points.
func pstdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// EMA returns the exponential moving average of values seeded at the first
// value. An empty series yields 0.
func EMA(values []float64, alpha float64) float64 {
	if len(values) == 0 {
		return 0
	}
	ema := values[0]
	for _, v := range values[1:] {
		ema = alpha*v + (1-alpha)*ema
	}
	return ema
}

func sortedCopy(values []float64) []float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return s
}

// nearestRank95 picks sorted[round(0.95*(n-1))] without interpolating.
func nearestRank95(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := sortedCopy(values)
	k := int(math.RoundToEven(0.95 * float64(len(s)-1)))
	return s[k]
}

// percentile interpolates linearly between the closest ranks; p is in [0,100].
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := sortedCopy(values)
	k := float64(len(s)-1) * (p / 100)
	f := int(k)
	c := f + 1
	if c > len(s)-1 {
		c = len(s) - 1
	}
	if f == c {
		return s[f]
	}
	return s[f] + (s[c]-s[f])*(k-float64(f))
}

// normalize maps x onto [0,1]: 0 at or below p50, 1 at or above p90.
func normalize(x, p50, p90 float64) float64 {
	if x <= p50 {
		return 0
	}
	if x >= p90 {
		return 1
	}
	return (x - p50) / math.Max(p90-p50, 1e-9)
}

// softmax returns exp(lambda*s_i) / sum_j exp(lambda*s_j). The exponent is
// shifted by its maximum, which leaves the weights unchanged.
func softmax(scores []float64, lambda float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	top := math.Inf(-1)
	for _, s := range scores {
		top = math.Max(top, lambda*s)
	}
	weights := make([]float64, len(scores))
	var z float64
	for i, s := range scores {
		weights[i] = math.Exp(lambda*s - top)
		z += weights[i]
	}
	if z == 0 {
		z = 1
	}
	for i := range weights {
		weights[i] /= z
	}
	return weights
}
