// Package store defines storage for daily bars (Parquet) and completed
// backtest results (SQLite).
package store

import (
	"context"
	"time"

	"backlab/internal/domain"
)

// BarStore persists and retrieves daily OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end],
	// sorted by timestamp.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in storage.
	ListSymbols(ctx context.Context) ([]string, error)
}

// RunRecord is one completed backtest run as persisted in the result store.
type RunRecord struct {
	ID             int64
	Symbol         string
	Start          time.Time
	End            time.Time
	InitialBalance float64
	FinalEquity    float64
	PctReturn      float64
	MaxDrawdown    float64
	WinRate        float64
	AvgReturn      float64
	NumberTrades   int
	CreatedAt      time.Time
}

// ResultStore persists backtest runs and their trade logs.
type ResultStore interface {
	// SaveRun inserts a run and its trades, returning the new run ID.
	SaveRun(ctx context.Context, run *RunRecord, trades []domain.Trade) (int64, error)

	// ListRuns returns the most recent runs for a symbol, newest first, up
	// to limit. An empty symbol matches all runs.
	ListRuns(ctx context.Context, symbol string, limit int) ([]RunRecord, error)

	// RunTrades returns the trade log for a run in execution order.
	RunTrades(ctx context.Context, runID int64) ([]domain.Trade, error)
}
