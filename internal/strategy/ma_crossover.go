package strategy

import (
	"fmt"
	"math"

	"backlab/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*MACrossover)(nil)

// maxConvictionGap is the relative gap between the short and long moving
// averages treated as maximal conviction: a 5% spread maps to a signal of ±1.
const maxConvictionGap = 0.05

// MACrossover signals on the relative spread between a short and a long
// trailing simple moving average of the closing price.
type MACrossover struct {
	signalState
	prices      *domain.PriceSeries
	shortWindow int
	longWindow  int
}

// NewMACrossover creates a moving-average crossover strategy. The short
// window must be positive and strictly smaller than the long window.
func NewMACrossover(prices *domain.PriceSeries, shortWindow, longWindow int) (*MACrossover, error) {
	if prices == nil {
		return nil, fmt.Errorf("ma-cross: nil price series")
	}
	if shortWindow <= 0 {
		return nil, fmt.Errorf("ma-cross: short window must be positive, got %d", shortWindow)
	}
	if longWindow <= shortWindow {
		return nil, fmt.Errorf("ma-cross: long window %d must exceed short window %d", longWindow, shortWindow)
	}
	return &MACrossover{
		prices:      prices,
		shortWindow: shortWindow,
		longWindow:  longWindow,
	}, nil
}

// Name returns "ma-cross".
func (s *MACrossover) Name() string { return "ma-cross" }

// GenerateSignals computes signal = ((SMA_short - SMA_long) / SMA_long) / 0.05
// clipped to [-1, 1]. Dates before the long window is populated are dropped.
func (s *MACrossover) GenerateSignals() (*domain.SignalSeries, error) {
	closes := s.prices.Closes()
	smaShort := rollingMean(closes, s.shortWindow)
	smaLong := rollingMean(closes, s.longWindow)

	values := make([]float64, len(closes))
	for i := range closes {
		switch {
		case math.IsNaN(smaShort[i]) || math.IsNaN(smaLong[i]):
			values[i] = math.NaN()
		case smaLong[i] == 0:
			// Degenerate all-zero price window; no defined spread.
			values[i] = 0
		default:
			values[i] = clip((smaShort[i] - smaLong[i]) / smaLong[i] / maxConvictionGap)
		}
	}

	signals, err := dropUndefined(s.prices.Dates(), values)
	if err != nil {
		return nil, fmt.Errorf("ma-cross: %w", err)
	}
	s.signals = signals
	return signals, nil
}
