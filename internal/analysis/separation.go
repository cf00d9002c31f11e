package analysis

import (
	"math"
)

// SeparationStats summarises the per-frame distance between two runs.
type SeparationStats struct {
	Max    float64
	RMS    float64
	Final  float64
	Frames int
	// Rate is the mean logarithmic growth of separation per frame, the same
	// estimate used for Lyapunov exponents. Zero when the runs never part.
	Rate float64
}

// Separation compares two recorded runs frame by frame. Frames beyond the
// shorter run, and particles beyond the narrower row, are ignored.
func Separation(a, b [][]float64) SeparationStats {
	n := min(len(a), len(b))
	var st SeparationStats
	if n == 0 {
		return st
	}

	sumSq := 0.0
	sumLog := 0.0
	count := 0
	prev := 0.0

	for i := 0; i < n; i++ {
		sep := rowDistance(a[i], b[i])
		if math.IsNaN(sep) {
			sep = math.Inf(1)
		}

		st.Max = math.Max(st.Max, sep)
		sumSq += sep * sep
		st.Final = sep

		if prev > 0 && sep > 0 && !math.IsInf(sep, 0) {
			sumLog += math.Log(sep / prev)
			count++
		}
		prev = sep
	}

	st.Frames = n
	st.RMS = math.Sqrt(sumSq / float64(n))
	if count > 0 {
		st.Rate = sumLog / float64(count)
	}
	return st
}

// rowDistance is the largest particle displacement between two rows.
func rowDistance(a, b []float64) float64 {
	m := min(len(a), len(b)) / 2
	worst := 0.0
	for p := 0; p < m; p++ {
		dx := a[2*p] - b[2*p]
		dy := a[2*p+1] - b[2*p+1]
		d := math.Sqrt(dx*dx + dy*dy)
		if math.IsNaN(d) {
			return d
		}
		worst = math.Max(worst, d)
	}
	return worst
}
