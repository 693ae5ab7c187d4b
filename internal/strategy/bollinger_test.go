package strategy

import (
	"testing"
)

func TestBollingerValidation(t *testing.T) {
	prices := newSeries(t, increasing(30))

	if _, err := NewBollingerBands(nil, 20); err == nil {
		t.Error("expected error for nil price series")
	}
	if _, err := NewBollingerBands(prices, 1); err == nil {
		t.Error("expected error for window < 2")
	}
}

func TestBollingerConstantPricesZeroWidthBand(t *testing.T) {
	// A constant series gives a zero-width band; the signal resolves to 0 on
	// every defined date instead of dividing by zero.
	s, err := NewBollingerBands(newSeries(t, constant(30, 150)), 5)
	if err != nil {
		t.Fatalf("NewBollingerBands returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}

	want := 30 - 4
	if signals.Len() != want {
		t.Fatalf("signal count = %d, want %d", signals.Len(), want)
	}
	for i := 0; i < signals.Len(); i++ {
		if signals.Value(i) != 0 {
			t.Errorf("constant-price signal at index %d = %v, want 0", i, signals.Value(i))
		}
	}
}

func TestBollingerMeanReversionDirection(t *testing.T) {
	// A spike above the moving average must produce a negative signal, a
	// drop below it a positive one.
	spikeUp := append(constant(9, 100), 120)
	s, err := NewBollingerBands(newSeries(t, spikeUp), 5)
	if err != nil {
		t.Fatalf("NewBollingerBands returned error: %v", err)
	}
	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}
	checkClipped(t, signals)
	if v, _ := signals.Latest(); v >= 0 {
		t.Errorf("signal after upward spike = %v, want < 0", v)
	}

	spikeDown := append(constant(9, 100), 80)
	s, err = NewBollingerBands(newSeries(t, spikeDown), 5)
	if err != nil {
		t.Fatalf("NewBollingerBands returned error: %v", err)
	}
	signals, err = s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}
	checkClipped(t, signals)
	if v, _ := signals.Latest(); v <= 0 {
		t.Errorf("signal after downward spike = %v, want > 0", v)
	}
}
