package strategy

import (
	"math"
	"time"

	"backlab/internal/domain"
)

// Indicator helpers shared by the built-in strategies. Positions where an
// indicator is not yet defined (warm-up) carry NaN; dropUndefined removes
// those rows before a signal series is built.

// rollingMean returns the trailing simple moving average over window
// observations. Entries are NaN until the window is fully populated, and NaN
// whenever any input inside the window is NaN.
func rollingMean(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		defined := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(xs[j]) {
				defined = false
				break
			}
			sum += xs[j]
		}
		if !defined {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// rollingStd returns the trailing sample standard deviation (n-1 divisor)
// over window observations, NaN until the window is fully populated.
func rollingStd(xs []float64, window int) []float64 {
	mean := rollingMean(xs, window)
	out := make([]float64, len(xs))
	for i := range out {
		if math.IsNaN(mean[i]) {
			out[i] = math.NaN()
			continue
		}
		sumSq := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := xs[j] - mean[i]
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(window-1))
	}
	return out
}

// ema returns the exponential moving average with smoothing span. The first
// output equals the first input; each subsequent value follows
// ema[t] = alpha*x[t] + (1-alpha)*ema[t-1] with alpha = 2/(span+1).
func ema(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}

// diff returns day-over-day changes, NaN at index 0.
func diff(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	out[0] = math.NaN()
	for i := 1; i < len(xs); i++ {
		out[i] = xs[i] - xs[i-1]
	}
	return out
}

// clip clamps x to the closed range [-1, 1].
func clip(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// dropUndefined builds a SignalSeries from parallel dates and values,
// removing every row whose value is NaN. Warm-up rows and numeric
// singularities that resolve to "undefined" simply do not appear in the
// resulting series.
func dropUndefined(dates []time.Time, values []float64) (*domain.SignalSeries, error) {
	keptDates := make([]time.Time, 0, len(dates))
	keptValues := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		keptDates = append(keptDates, dates[i])
		keptValues = append(keptValues, v)
	}
	return domain.NewSignalSeries(keptDates, keptValues)
}
