package strategy

import (
	"math"
	"testing"
)

func TestRSIValidation(t *testing.T) {
	prices := newSeries(t, increasing(30))

	if _, err := NewRSI(prices, 0, 30, 70); err == nil {
		t.Error("expected error for zero period")
	}
	if _, err := NewRSI(prices, 14, 70, 30); err == nil {
		t.Error("expected error for oversold >= overbought")
	}
	if _, err := NewRSI(prices, 14, -1, 70); err == nil {
		t.Error("expected error for negative oversold")
	}
}

func TestRSIAllGainsIsMaximallyBearish(t *testing.T) {
	// Only positive day-over-day changes: the zero-loss singularity. RSI is
	// taken at its limit of 100, so the signal is -1 on every defined date.
	s, err := NewRSI(newSeries(t, increasing(20)), 5, 30, 70)
	if err != nil {
		t.Fatalf("NewRSI returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	// The first date has no delta and the next period-1 dates have no full
	// window, so period rows are dropped.
	want := 20 - 5
	if signals.Len() != want {
		t.Fatalf("signal count = %d, want %d", signals.Len(), want)
	}
	for i := 0; i < signals.Len(); i++ {
		if signals.Value(i) != -1 {
			t.Errorf("all-gains signal at index %d = %v, want -1", i, signals.Value(i))
		}
	}
}

func TestRSIAllLossesIsMaximallyBullish(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	s, err := NewRSI(newSeries(t, closes), 5, 30, 70)
	if err != nil {
		t.Fatalf("NewRSI returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	for i := 0; i < signals.Len(); i++ {
		if signals.Value(i) != 1 {
			t.Errorf("all-losses signal at index %d = %v, want 1", i, signals.Value(i))
		}
	}
}

func TestRSIFlatWindowDropped(t *testing.T) {
	// No gains and no losses leaves the relative strength 0/0 undefined;
	// those rows are dropped rather than emitted with a placeholder.
	s, err := NewRSI(newSeries(t, constant(20, 100)), 5, 30, 70)
	if err != nil {
		t.Fatalf("NewRSI returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}
	if signals.Len() != 0 {
		t.Errorf("flat-series signal count = %d, want 0", signals.Len())
	}
}

func TestRSIBalancedWindowIsNeutral(t *testing.T) {
	// Alternating +1/-1 moves give equal average gain and loss: RSI = 50.
	closes := make([]float64, 21)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1
		} else {
			closes[i] = closes[i-1] - 1
		}
	}
	s, err := NewRSI(newSeries(t, closes), 4, 30, 70)
	if err != nil {
		t.Fatalf("NewRSI returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	checkClipped(t, signals)
	for i := 0; i < signals.Len(); i++ {
		if math.Abs(signals.Value(i)) > 1e-12 {
			t.Errorf("balanced signal at index %d = %v, want 0", i, signals.Value(i))
		}
	}
}
