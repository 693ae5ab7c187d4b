package domain

import (
	"testing"
	"time"
)

func date(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestNewPriceSeries(t *testing.T) {
	dates := []time.Time{date(1), date(2), date(3)}
	closes := []float64{100, 101, 102}

	s, err := NewPriceSeries(dates, closes)
	if err != nil {
		t.Fatalf("NewPriceSeries returned error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if got := s.Close(1); got != 101 {
		t.Errorf("Close(1) = %v, want 101", got)
	}
	if got := s.Date(2); !got.Equal(date(3)) {
		t.Errorf("Date(2) = %v, want %v", got, date(3))
	}

	v, ok := s.CloseOn(date(2))
	if !ok || v != 101 {
		t.Errorf("CloseOn(date 2) = %v, %v; want 101, true", v, ok)
	}
	if _, ok := s.CloseOn(date(9)); ok {
		t.Error("CloseOn returned true for a date not in the series")
	}
}

func TestNewPriceSeriesNormalizesToDay(t *testing.T) {
	// Intraday timestamps index the same trading date.
	ts := time.Date(2024, time.January, 2, 15, 30, 0, 0, time.UTC)
	s, err := NewPriceSeries([]time.Time{ts}, []float64{100})
	if err != nil {
		t.Fatalf("NewPriceSeries returned error: %v", err)
	}
	if v, ok := s.CloseOn(date(2)); !ok || v != 100 {
		t.Errorf("CloseOn(midnight) = %v, %v; want 100, true", v, ok)
	}
}

func TestNewPriceSeriesRejectsBadInput(t *testing.T) {
	if _, err := NewPriceSeries([]time.Time{date(1)}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := NewPriceSeries([]time.Time{date(1), date(1)}, []float64{1, 2}); err == nil {
		t.Error("expected error for duplicate dates")
	}
	if _, err := NewPriceSeries([]time.Time{date(2), date(1)}, []float64{1, 2}); err == nil {
		t.Error("expected error for unsorted dates")
	}
}

func TestPriceSeriesCopiesAreIndependent(t *testing.T) {
	s, err := NewPriceSeries([]time.Time{date(1), date(2)}, []float64{10, 20})
	if err != nil {
		t.Fatalf("NewPriceSeries returned error: %v", err)
	}

	closes := s.Closes()
	closes[0] = -1
	if got := s.Close(0); got != 10 {
		t.Errorf("mutating Closes() copy changed the series: Close(0) = %v, want 10", got)
	}
}

func TestSignalSeriesLookup(t *testing.T) {
	s, err := NewSignalSeries([]time.Time{date(1), date(3)}, []float64{0.5, -0.5})
	if err != nil {
		t.Fatalf("NewSignalSeries returned error: %v", err)
	}

	if v, ok := s.ValueOn(date(3)); !ok || v != -0.5 {
		t.Errorf("ValueOn(date 3) = %v, %v; want -0.5, true", v, ok)
	}
	if _, ok := s.ValueOn(date(2)); ok {
		t.Error("ValueOn returned true for a dropped date")
	}

	v, ok := s.Latest()
	if !ok || v != -0.5 {
		t.Errorf("Latest() = %v, %v; want -0.5, true", v, ok)
	}
}

func TestSignalSeriesLatestEmpty(t *testing.T) {
	s, err := NewSignalSeries(nil, nil)
	if err != nil {
		t.Fatalf("NewSignalSeries returned error: %v", err)
	}
	if _, ok := s.Latest(); ok {
		t.Error("Latest() returned true for an empty series")
	}
}

func TestPriceSeriesFromBars(t *testing.T) {
	bars := []Bar{
		{Symbol: "AAPL", Timestamp: date(1), Close: 100},
		{Symbol: "AAPL", Timestamp: date(2), Close: 110},
	}
	s, err := PriceSeriesFromBars(bars)
	if err != nil {
		t.Fatalf("PriceSeriesFromBars returned error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if v, _ := s.CloseOn(date(2)); v != 110 {
		t.Errorf("CloseOn(date 2) = %v, want 110", v)
	}
}
