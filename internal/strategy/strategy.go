// Package strategy defines the Strategy interface for signal-generating
// trading strategies, the four built-in implementations, and the Manager
// that blends their signals into one combined signal per date.
package strategy

import (
	"errors"

	"backlab/internal/domain"
)

// Strategy is the interface all trading strategies implement. A strategy owns
// a price series and a parameter set, and converts the price history into a
// normalized signal series with values in [-1, 1] (positive = bullish).
type Strategy interface {
	// Name returns the strategy identifier (e.g. "ma-cross").
	Name() string

	// GenerateSignals computes the signal series from the price history and
	// stores it for later lookup. Calling it again regenerates and replaces
	// the stored series.
	GenerateSignals() (*domain.SignalSeries, error)

	// Signals returns the stored signal series, or nil if GenerateSignals
	// has not been called yet.
	Signals() *domain.SignalSeries

	// LatestSignal returns the signal value at the most recent date of the
	// stored series. It fails if GenerateSignals has not been called.
	LatestSignal() (float64, error)
}

// ErrNotGenerated is returned by LatestSignal before GenerateSignals has run.
var ErrNotGenerated = errors.New("signals not generated")

// signalState holds the most recently generated signal series. Concrete
// strategies embed it to share the storage and lookup behaviour.
type signalState struct {
	signals *domain.SignalSeries
}

// Signals returns the stored signal series, or nil before generation.
func (s *signalState) Signals() *domain.SignalSeries { return s.signals }

// LatestSignal returns the most recent stored signal value.
func (s *signalState) LatestSignal() (float64, error) {
	if s.signals == nil {
		return 0, ErrNotGenerated
	}
	v, ok := s.signals.Latest()
	if !ok {
		return 0, errors.New("signal series is empty")
	}
	return v, nil
}
