// Package domain defines the core data types shared across the backtesting
// lab: daily bars, date-indexed price and signal series, trade records, and
// equity curve points.
package domain

import (
	"fmt"
	"time"
)

// Day normalizes t to midnight UTC so that bars from different feeds index
// the same trading date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Bar is a single daily OHLCV bar for one symbol.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// ---------------------------------------------------------------------------
// PriceSeries
// ---------------------------------------------------------------------------

// PriceSeries is an ordered, date-indexed sequence of closing prices with
// strictly increasing dates and no duplicates. It is immutable after
// construction; strategies read it but never modify it.
type PriceSeries struct {
	dates  []time.Time
	closes []float64
	index  map[time.Time]int
}

// NewPriceSeries builds a PriceSeries from parallel date and close slices.
// Dates are normalized to midnight UTC and must be strictly increasing.
func NewPriceSeries(dates []time.Time, closes []float64) (*PriceSeries, error) {
	if len(dates) != len(closes) {
		return nil, fmt.Errorf("price series: %d dates but %d closes", len(dates), len(closes))
	}

	s := &PriceSeries{
		dates:  make([]time.Time, len(dates)),
		closes: make([]float64, len(closes)),
		index:  make(map[time.Time]int, len(dates)),
	}
	for i, d := range dates {
		day := Day(d)
		if i > 0 && !s.dates[i-1].Before(day) {
			return nil, fmt.Errorf("price series: dates not strictly increasing at %s", day.Format("2006-01-02"))
		}
		s.dates[i] = day
		s.closes[i] = closes[i]
		s.index[day] = i
	}
	return s, nil
}

// PriceSeriesFromBars builds a PriceSeries from daily bars, which must
// already be sorted by timestamp.
func PriceSeriesFromBars(bars []Bar) (*PriceSeries, error) {
	dates := make([]time.Time, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		dates[i] = b.Timestamp
		closes[i] = b.Close
	}
	return NewPriceSeries(dates, closes)
}

// Len returns the number of dates in the series.
func (s *PriceSeries) Len() int { return len(s.dates) }

// Date returns the i-th date.
func (s *PriceSeries) Date(i int) time.Time { return s.dates[i] }

// Close returns the i-th closing price.
func (s *PriceSeries) Close(i int) float64 { return s.closes[i] }

// Dates returns a copy of all dates in order.
func (s *PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// Closes returns a copy of all closing prices in date order. Strategies work
// on this copy so the shared series is never mutated.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.closes))
	copy(out, s.closes)
	return out
}

// CloseOn returns the closing price for the given date. The second return
// value reports whether the date is present in the series.
func (s *PriceSeries) CloseOn(date time.Time) (float64, bool) {
	i, ok := s.index[Day(date)]
	if !ok {
		return 0, false
	}
	return s.closes[i], true
}

// ---------------------------------------------------------------------------
// SignalSeries
// ---------------------------------------------------------------------------

// SignalSeries is an ordered, date-indexed sequence of signal values in
// [-1, 1], aligned to the subset of price dates for which the underlying
// indicator is defined.
type SignalSeries struct {
	dates  []time.Time
	values []float64
	index  map[time.Time]int
}

// NewSignalSeries builds a SignalSeries from parallel date and value slices.
// Dates are normalized to midnight UTC and must be strictly increasing.
func NewSignalSeries(dates []time.Time, values []float64) (*SignalSeries, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("signal series: %d dates but %d values", len(dates), len(values))
	}

	s := &SignalSeries{
		dates:  make([]time.Time, len(dates)),
		values: make([]float64, len(values)),
		index:  make(map[time.Time]int, len(dates)),
	}
	for i, d := range dates {
		day := Day(d)
		if i > 0 && !s.dates[i-1].Before(day) {
			return nil, fmt.Errorf("signal series: dates not strictly increasing at %s", day.Format("2006-01-02"))
		}
		s.dates[i] = day
		s.values[i] = values[i]
		s.index[day] = i
	}
	return s, nil
}

// Len returns the number of dates in the series.
func (s *SignalSeries) Len() int { return len(s.dates) }

// Date returns the i-th date.
func (s *SignalSeries) Date(i int) time.Time { return s.dates[i] }

// Value returns the i-th signal value.
func (s *SignalSeries) Value(i int) float64 { return s.values[i] }

// Dates returns a copy of all dates in order.
func (s *SignalSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// ValueOn returns the signal value for the given date. The second return
// value reports whether the date is present in the series.
func (s *SignalSeries) ValueOn(date time.Time) (float64, bool) {
	i, ok := s.index[Day(date)]
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// Latest returns the signal value at the most recent date. The second return
// value is false for an empty series.
func (s *SignalSeries) Latest() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[len(s.values)-1], true
}

// ---------------------------------------------------------------------------
// Trades and equity
// ---------------------------------------------------------------------------

// TradeAction distinguishes entries from exits in the trade log.
type TradeAction string

const (
	TradeBuy  TradeAction = "BUY"
	TradeSell TradeAction = "SELL"
)

// Trade is one executed simulated trade. Records are immutable once appended
// to the trade log. Profit and ProfitPct are populated for SELL only.
type Trade struct {
	Action    TradeAction
	Date      time.Time
	Price     float64
	Shares    int64
	CashDelta float64 // total cost for BUY, net proceeds for SELL
	Signal    float64 // combined signal that triggered the trade
	CashAfter float64
	Profit    float64
	ProfitPct float64
}

// EquityPoint is the total account value (cash + shares at the day's close)
// on one backtest date.
type EquityPoint struct {
	Date   time.Time
	Equity float64
}
