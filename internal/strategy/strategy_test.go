package strategy

import (
	"testing"
	"time"

	"backlab/internal/domain"
)

// newSeries builds a test price series with consecutive daily dates starting
// 2024-01-01.
func newSeries(t *testing.T, closes []float64) *domain.PriceSeries {
	t.Helper()
	dates := make([]time.Time, len(closes))
	for i := range closes {
		dates[i] = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	}
	s, err := domain.NewPriceSeries(dates, closes)
	if err != nil {
		t.Fatalf("building price series: %v", err)
	}
	return s
}

// increasing returns n strictly increasing closes.
func increasing(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

// constant returns n identical closes.
func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// checkClipped fails if any signal value leaves [-1, 1].
func checkClipped(t *testing.T, signals *domain.SignalSeries) {
	t.Helper()
	for i := 0; i < signals.Len(); i++ {
		if v := signals.Value(i); v < -1 || v > 1 {
			t.Errorf("signal on %s = %v, outside [-1, 1]",
				signals.Date(i).Format("2006-01-02"), v)
		}
	}
}

func TestLatestSignalBeforeGeneration(t *testing.T) {
	s, err := NewMACrossover(newSeries(t, increasing(30)), 2, 5)
	if err != nil {
		t.Fatalf("NewMACrossover returned error: %v", err)
	}
	if _, err := s.LatestSignal(); err == nil {
		t.Error("LatestSignal before GenerateSignals did not fail")
	}
	if s.Signals() != nil {
		t.Error("Signals() not nil before generation")
	}
}

func TestRegenerateReplacesStoredSignals(t *testing.T) {
	s, err := NewMACrossover(newSeries(t, increasing(30)), 2, 5)
	if err != nil {
		t.Fatalf("NewMACrossover returned error: %v", err)
	}
	first, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}
	second, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("regenerating returned error: %v", err)
	}
	if s.Signals() != second {
		t.Error("stored signals not replaced by regeneration")
	}
	if first.Len() != second.Len() {
		t.Errorf("regenerated series length %d, want %d", second.Len(), first.Len())
	}
}
