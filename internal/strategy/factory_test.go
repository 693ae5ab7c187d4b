package strategy

import (
	"testing"
)

func TestBuildKnownStrategies(t *testing.T) {
	prices := newSeries(t, increasing(60))

	for _, name := range []string{"ma-cross", "macd", "rsi", "bollinger"} {
		s, err := Build(name, prices, Params{})
		if err != nil {
			t.Errorf("Build(%q) returned error: %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("Build(%q).Name() = %q", name, s.Name())
		}
		if _, err := s.GenerateSignals(); err != nil {
			t.Errorf("%s with default params failed to generate: %v", name, err)
		}
	}
}

func TestBuildNormalizesName(t *testing.T) {
	prices := newSeries(t, increasing(60))
	s, err := Build("  MACD ", prices, Params{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if s.Name() != "macd" {
		t.Errorf("Name() = %q, want %q", s.Name(), "macd")
	}
}

func TestBuildUnknownStrategy(t *testing.T) {
	prices := newSeries(t, increasing(60))
	if _, err := Build("momentum", prices, Params{}); err == nil {
		t.Error("expected error for unknown strategy name")
	}
}

func TestBuildOverridesDefaults(t *testing.T) {
	prices := newSeries(t, increasing(60))
	s, err := Build("ma-cross", prices, Params{ShortWindow: 3, LongWindow: 7})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	signals, err := s.GenerateSignals()
	if err != nil {
		t.Fatalf("GenerateSignals returned error: %v", err)
	}
	// A 7-day long window drops exactly the first 6 dates.
	if want := 60 - 6; signals.Len() != want {
		t.Errorf("signal count = %d, want %d", signals.Len(), want)
	}
}

func TestBuildRejectsBadParams(t *testing.T) {
	prices := newSeries(t, increasing(60))
	if _, err := Build("ma-cross", prices, Params{ShortWindow: 20, LongWindow: 5}); err == nil {
		t.Error("expected error for short window >= long window")
	}
}
