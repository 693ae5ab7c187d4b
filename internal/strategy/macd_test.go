package strategy

import (
	"math"
	"testing"
)

func TestMACDValidation(t *testing.T) {
	prices := newSeries(t, increasing(30))

	if _, err := NewMACD(prices, 0, 17, 7, 0.5); err == nil {
		t.Error("expected error for zero fast period")
	}
	if _, err := NewMACD(prices, 17, 8, 7, 0.5); err == nil {
		t.Error("expected error for slow period <= fast period")
	}
	if _, err := NewMACD(prices, 8, 17, 0, 0.5); err == nil {
		t.Error("expected error for zero signal period")
	}
	if _, err := NewMACD(prices, 8, 17, 7, 0); err == nil {
		t.Error("expected error for zero threshold")
	}
}

func TestMACDNoWarmupGap(t *testing.T) {
	prices := newSeries(t, increasing(30))
	s, err := NewMACD(prices, 8, 17, 7, 0.5)
	if err != nil {
		t.Fatalf("NewMACD returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	// EMAs are seeded from the first observation; every date is emitted.
	if signals.Len() != prices.Len() {
		t.Errorf("signal count = %d, want %d", signals.Len(), prices.Len())
	}
	checkClipped(t, signals)
}

func TestMACDConstantPricesConvergeToZero(t *testing.T) {
	// A constant series has identical EMAs, so the histogram is exactly 0.
	s, err := NewMACD(newSeries(t, constant(40, 250)), 8, 17, 7, 0.5)
	if err != nil {
		t.Fatalf("NewMACD returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	for i := 0; i < signals.Len(); i++ {
		if signals.Value(i) != 0 {
			t.Errorf("constant-price signal at index %d = %v, want 0", i, signals.Value(i))
		}
	}
}

func TestMACDHistogramScaling(t *testing.T) {
	closes := []float64{100, 105, 99, 110, 108, 115, 112, 120}
	prices := newSeries(t, closes)

	// The same histogram divided by a larger threshold gives a smaller signal
	// until either clips.
	tight, err := NewMACD(prices, 2, 4, 2, 0.1)
	if err != nil {
		t.Fatalf("NewMACD returned error: %v", err)
	}
	loose, err := NewMACD(prices, 2, 4, 2, 100)
	if err != nil {
		t.Fatalf("NewMACD returned error: %v", err)
	}

	tightSignals, err := tight.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}
	looseSignals, err := loose.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	checkClipped(t, tightSignals)
	checkClipped(t, looseSignals)
	for i := 0; i < looseSignals.Len(); i++ {
		if math.Abs(looseSignals.Value(i)) > math.Abs(tightSignals.Value(i))+1e-12 {
			t.Errorf("index %d: loose threshold signal %v exceeds tight %v",
				i, looseSignals.Value(i), tightSignals.Value(i))
		}
	}
}
