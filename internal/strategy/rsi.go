package strategy

import (
	"fmt"
	"math"

	"backlab/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*RSI)(nil)

// RSI signals on the relative strength index: trailing average gains versus
// trailing average losses over a fixed period. RSI near 0 (oversold) maps to
// a bullish signal, RSI near 100 (overbought) to a bearish one.
type RSI struct {
	signalState
	prices     *domain.PriceSeries
	period     int
	oversold   float64
	overbought float64
}

// NewRSI creates an RSI strategy. The oversold and overbought levels are
// informational thresholds carried for reporting; they do not alter the
// signal computation.
func NewRSI(prices *domain.PriceSeries, period int, oversold, overbought float64) (*RSI, error) {
	if prices == nil {
		return nil, fmt.Errorf("rsi: nil price series")
	}
	if period <= 0 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d", period)
	}
	if oversold < 0 || overbought > 100 || oversold >= overbought {
		return nil, fmt.Errorf("rsi: invalid levels oversold=%v overbought=%v", oversold, overbought)
	}
	return &RSI{
		prices:     prices,
		period:     period,
		oversold:   oversold,
		overbought: overbought,
	}, nil
}

// Name returns "rsi".
func (s *RSI) Name() string { return "rsi" }

// Oversold returns the configured oversold level.
func (s *RSI) Oversold() float64 { return s.oversold }

// Overbought returns the configured overbought level.
func (s *RSI) Overbought() float64 { return s.overbought }

// GenerateSignals computes signal = (50 - RSI) / 50 clipped to [-1, 1].
//
// When the trailing average loss is zero but gains exist, RSI is taken at its
// limit of 100 and the signal resolves to -1 (maximally bearish). A window
// with neither gains nor losses leaves the ratio 0/0 undefined, and the row
// is dropped like any other undefined row.
func (s *RSI) GenerateSignals() (*domain.SignalSeries, error) {
	closes := s.prices.Closes()
	deltas := diff(closes)

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i, d := range deltas {
		if math.IsNaN(d) {
			gains[i] = math.NaN()
			losses[i] = math.NaN()
			continue
		}
		if d > 0 {
			gains[i] = d
		}
		if d < 0 {
			losses[i] = -d
		}
	}

	avgGain := rollingMean(gains, s.period)
	avgLoss := rollingMean(losses, s.period)

	values := make([]float64, len(closes))
	for i := range closes {
		switch {
		case math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]):
			values[i] = math.NaN()
		case avgLoss[i] == 0 && avgGain[i] == 0:
			values[i] = math.NaN()
		case avgLoss[i] == 0:
			// Zero-loss limit: RSI -> 100.
			values[i] = -1
		default:
			rs := avgGain[i] / avgLoss[i]
			rsi := 100 - 100/(1+rs)
			values[i] = clip((50 - rsi) / 50)
		}
	}

	signals, err := dropUndefined(s.prices.Dates(), values)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	s.signals = signals
	return signals, nil
}
