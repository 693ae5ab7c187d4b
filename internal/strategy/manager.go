package strategy

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"backlab/internal/domain"
)

// ErrNoSignal is returned by CombinedSignal for a date missing from at least
// one constituent strategy's signal series. Callers restrict iteration to
// AlignDates before looking up; a miss is never silently treated as zero.
var ErrNoSignal = errors.New("no signal for date")

// Manager holds an ordered list of strategies and a parallel list of weights
// and exposes the weighted combined signal per date. Weights are applied
// as-is; the sum is not renormalized.
type Manager struct {
	strategies []Strategy
	weights    []float64
}

// NewManager creates a Manager. The strategy and weight lists must be the
// same non-zero length.
func NewManager(strategies []Strategy, weights []float64) (*Manager, error) {
	if len(strategies) == 0 {
		return nil, errors.New("manager: at least one strategy required")
	}
	if len(strategies) != len(weights) {
		return nil, fmt.Errorf("manager: %d strategies but %d weights", len(strategies), len(weights))
	}
	return &Manager{
		strategies: strategies,
		weights:    weights,
	}, nil
}

// RunAll generates signals for every strategy. Strategies are independent
// and share no mutable state, so they run concurrently.
func (m *Manager) RunAll() error {
	errs := make([]error, len(m.strategies))

	var wg sync.WaitGroup
	for i, s := range m.strategies {
		i, s := i, s
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.GenerateSignals()
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("strategy %s: %w", m.strategies[i].Name(), err)
		}
	}
	return nil
}

// CombinedSignal returns the weighted sum of every strategy's signal for the
// given date. The date must be present in every constituent's signal series,
// otherwise ErrNoSignal is returned.
func (m *Manager) CombinedSignal(date time.Time) (float64, error) {
	combined := 0.0
	for i, s := range m.strategies {
		signals := s.Signals()
		if signals == nil {
			return 0, fmt.Errorf("strategy %s: %w", s.Name(), ErrNotGenerated)
		}
		v, ok := signals.ValueOn(date)
		if !ok {
			return 0, fmt.Errorf("strategy %s, date %s: %w", s.Name(), domain.Day(date).Format("2006-01-02"), ErrNoSignal)
		}
		combined += m.weights[i] * v
	}
	return combined, nil
}

// AlignDates returns the sorted intersection of every strategy's signal
// dates: the dates on which CombinedSignal is defined. It fails if any
// strategy has not generated signals yet.
func (m *Manager) AlignDates() ([]time.Time, error) {
	first := m.strategies[0].Signals()
	if first == nil {
		return nil, fmt.Errorf("strategy %s: %w", m.strategies[0].Name(), ErrNotGenerated)
	}

	aligned := first.Dates()
	for _, s := range m.strategies[1:] {
		signals := s.Signals()
		if signals == nil {
			return nil, fmt.Errorf("strategy %s: %w", s.Name(), ErrNotGenerated)
		}
		kept := aligned[:0]
		for _, d := range aligned {
			if _, ok := signals.ValueOn(d); ok {
				kept = append(kept, d)
			}
		}
		aligned = kept
	}
	return aligned, nil
}
