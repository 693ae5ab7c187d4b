package strategy

import (
	"fmt"
	"math"

	"backlab/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*BollingerBands)(nil)

// BollingerBands is a mean-reversion strategy: price above the upper band
// (middle + 2 standard deviations) yields a strongly negative signal, price
// below the lower band a strongly positive one.
type BollingerBands struct {
	signalState
	prices *domain.PriceSeries
	window int
}

// NewBollingerBands creates a Bollinger Bands strategy. The window must be at
// least 2 so the trailing sample standard deviation is defined.
func NewBollingerBands(prices *domain.PriceSeries, window int) (*BollingerBands, error) {
	if prices == nil {
		return nil, fmt.Errorf("bollinger: nil price series")
	}
	if window < 2 {
		return nil, fmt.Errorf("bollinger: window must be at least 2, got %d", window)
	}
	return &BollingerBands{
		prices: prices,
		window: window,
	}, nil
}

// Name returns "bollinger".
func (s *BollingerBands) Name() string { return "bollinger" }

// GenerateSignals computes signal = -(price - middle) / halfWidth clipped to
// [-1, 1], where halfWidth is two trailing standard deviations. A zero-width
// band (constant prices in the window) resolves to a signal of 0.
func (s *BollingerBands) GenerateSignals() (*domain.SignalSeries, error) {
	closes := s.prices.Closes()
	middle := rollingMean(closes, s.window)
	stddev := rollingStd(closes, s.window)

	values := make([]float64, len(closes))
	for i := range closes {
		switch {
		case math.IsNaN(middle[i]) || math.IsNaN(stddev[i]):
			values[i] = math.NaN()
		case stddev[i] == 0:
			values[i] = 0
		default:
			halfWidth := 2 * stddev[i]
			values[i] = clip(-(closes[i] - middle[i]) / halfWidth)
		}
	}

	signals, err := dropUndefined(s.prices.Dates(), values)
	if err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}
	s.signals = signals
	return signals, nil
}
