package strategy

import (
	"fmt"

	"backlab/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*MACD)(nil)

// MACD signals on the MACD histogram: the gap between the MACD line
// (EMA_fast - EMA_slow of the close) and its own EMA signal line.
type MACD struct {
	signalState
	prices       *domain.PriceSeries
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	threshold    float64
}

// NewMACD creates a MACD strategy. The fast period must be positive and
// strictly smaller than the slow period; threshold is the histogram value
// treated as maximal conviction and must be positive.
func NewMACD(prices *domain.PriceSeries, fastPeriod, slowPeriod, signalPeriod int, threshold float64) (*MACD, error) {
	if prices == nil {
		return nil, fmt.Errorf("macd: nil price series")
	}
	if fastPeriod <= 0 {
		return nil, fmt.Errorf("macd: fast period must be positive, got %d", fastPeriod)
	}
	if slowPeriod <= fastPeriod {
		return nil, fmt.Errorf("macd: slow period %d must exceed fast period %d", slowPeriod, fastPeriod)
	}
	if signalPeriod <= 0 {
		return nil, fmt.Errorf("macd: signal period must be positive, got %d", signalPeriod)
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("macd: threshold must be positive, got %v", threshold)
	}
	return &MACD{
		prices:       prices,
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		threshold:    threshold,
	}, nil
}

// Name returns "macd".
func (s *MACD) Name() string { return "macd" }

// GenerateSignals computes signal = histogram / threshold clipped to [-1, 1].
// EMAs are seeded from the first observation, so unlike the rolling-window
// strategies there is no warm-up gap and every input date is emitted.
func (s *MACD) GenerateSignals() (*domain.SignalSeries, error) {
	closes := s.prices.Closes()
	emaFast := ema(closes, s.fastPeriod)
	emaSlow := ema(closes, s.slowPeriod)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := ema(macdLine, s.signalPeriod)

	values := make([]float64, len(closes))
	for i := range closes {
		histogram := macdLine[i] - signalLine[i]
		values[i] = clip(histogram / s.threshold)
	}

	signals, err := dropUndefined(s.prices.Dates(), values)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	s.signals = signals
	return signals, nil
}
