package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"backlab/internal/domain"
)

// Compile-time interface check.
var _ ResultStore = (*SQLiteStore)(nil)

// SQLiteStore implements ResultStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, creates the
// schema if needed, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol          TEXT NOT NULL,
	start_date      TEXT NOT NULL,
	end_date        TEXT NOT NULL,
	initial_balance REAL NOT NULL,
	final_equity    REAL NOT NULL,
	pct_return      REAL NOT NULL,
	max_drawdown    REAL NOT NULL,
	win_rate        REAL NOT NULL,
	avg_return      REAL NOT NULL,
	number_trades   INTEGER NOT NULL,
	created_at      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS trades (
	run_id     INTEGER NOT NULL REFERENCES runs(id),
	seq        INTEGER NOT NULL,
	action     TEXT NOT NULL,
	date       TEXT NOT NULL,
	price      REAL NOT NULL,
	shares     INTEGER NOT NULL,
	cash_delta REAL NOT NULL,
	signal     REAL NOT NULL,
	cash_after REAL NOT NULL,
	profit     REAL NOT NULL,
	profit_pct REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveRun inserts a run and its trade log in one transaction and returns the
// new run ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *RunRecord, trades []domain.Trade) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (symbol, start_date, end_date, initial_balance, final_equity,
			pct_return, max_drawdown, win_rate, avg_return, number_trades, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Symbol,
		run.Start.Format("2006-01-02"),
		run.End.Format("2006-01-02"),
		run.InitialBalance,
		run.FinalEquity,
		run.PctReturn,
		run.MaxDrawdown,
		run.WinRate,
		run.AvgReturn,
		run.NumberTrades,
		createdAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, t := range trades {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trades (run_id, seq, action, date, price, shares,
				cash_delta, signal, cash_after, profit, profit_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, string(t.Action), t.Date.Format("2006-01-02"),
			t.Price, t.Shares, t.CashDelta, t.Signal, t.CashAfter,
			t.Profit, t.ProfitPct,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting trade %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	run.ID = runID
	run.CreatedAt = createdAt
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. An empty symbol
// matches all runs.
func (s *SQLiteStore) ListRuns(ctx context.Context, symbol string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, symbol, start_date, end_date, initial_balance, final_equity,
			pct_return, max_drawdown, win_rate, avg_return, number_trades, created_at
		FROM runs
		WHERE (? = '' OR symbol = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, symbol, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var start, end string
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Symbol, &start, &end, &r.InitialBalance,
			&r.FinalEquity, &r.PctReturn, &r.MaxDrawdown, &r.WinRate,
			&r.AvgReturn, &r.NumberTrades, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Start, _ = time.Parse("2006-01-02", start)
		r.End, _ = time.Parse("2006-01-02", end)
		r.CreatedAt = time.Unix(createdAt, 0).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunTrades returns the trade log for a run in execution order.
func (s *SQLiteStore) RunTrades(ctx context.Context, runID int64) ([]domain.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action, date, price, shares, cash_delta, signal, cash_after, profit, profit_pct
		FROM trades
		WHERE run_id = ?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var action, date string
		if err := rows.Scan(&action, &date, &t.Price, &t.Shares, &t.CashDelta,
			&t.Signal, &t.CashAfter, &t.Profit, &t.ProfitPct); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		t.Action = domain.TradeAction(action)
		t.Date, _ = time.Parse("2006-01-02", date)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
