// Package backtest simulates a single-position trading account driven by a
// combined signal series over a daily price history, producing a trade log,
// an equity curve, and summary metrics.
package backtest

import (
	"errors"
	"fmt"
	"math"
	"time"

	"backlab/internal/domain"
)

// SignalSource supplies the per-date combined signal the simulator reacts to.
// *strategy.Manager satisfies it.
type SignalSource interface {
	// AlignDates returns the sorted dates for which a combined signal is
	// defined.
	AlignDates() ([]time.Time, error)

	// CombinedSignal returns the combined signal for a date from AlignDates.
	CombinedSignal(date time.Time) (float64, error)
}

// Config holds the simulation parameters, validated at construction.
type Config struct {
	InitialBalance  float64 // starting cash
	Threshold       float64 // combined-signal magnitude required to act
	PositionSizePct float64 // fraction of cash committed per entry
	TransactionCost float64 // proportional fee on entry and exit notional
}

func (c Config) validate() error {
	if c.InitialBalance <= 0 {
		return fmt.Errorf("initial balance must be positive, got %v", c.InitialBalance)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", c.Threshold)
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 1 {
		return fmt.Errorf("position size pct must be in (0, 1], got %v", c.PositionSizePct)
	}
	if c.TransactionCost < 0 {
		return fmt.Errorf("transaction cost must not be negative, got %v", c.TransactionCost)
	}
	return nil
}

// Result is the full output of one simulation run.
type Result struct {
	Trades      []domain.Trade
	EquityCurve []domain.EquityPoint
	Metrics     Metrics
}

// Backtester replays the combined signal against the price history through a
// flat/long position state machine.
type Backtester struct {
	prices  *domain.PriceSeries
	signals SignalSource
	cfg     Config
}

// New creates a Backtester. The configuration is checked up front so a bad
// parameter fails here rather than partway through a run.
func New(prices *domain.PriceSeries, signals SignalSource, cfg Config) (*Backtester, error) {
	if prices == nil {
		return nil, errors.New("backtest: nil price series")
	}
	if signals == nil {
		return nil, errors.New("backtest: nil signal source")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("backtest config: %w", err)
	}
	return &Backtester{
		prices:  prices,
		signals: signals,
		cfg:     cfg,
	}, nil
}

// accountState carries the mutable simulation state through the date fold:
// exactly one of flat (long == false, shares == 0) or long holds on any date.
type accountState struct {
	cash       float64
	long       bool
	shares     int64
	entryPrice float64
}

// enter opens a long position, committing PositionSizePct of cash. It
// reports false when the sized allocation buys zero whole shares; that is a
// no-op, not an error.
func (st *accountState) enter(date time.Time, price, signal float64, cfg Config) (domain.Trade, bool) {
	shares := int64(math.Floor(st.cash * cfg.PositionSizePct / price))
	if shares <= 0 {
		return domain.Trade{}, false
	}

	cost := float64(shares) * price * (1 + cfg.TransactionCost)
	st.cash -= cost
	st.long = true
	st.shares = shares
	st.entryPrice = price

	return domain.Trade{
		Action:    domain.TradeBuy,
		Date:      date,
		Price:     price,
		Shares:    shares,
		CashDelta: cost,
		Signal:    signal,
		CashAfter: st.cash,
	}, true
}

// exit liquidates the open position, realizing profit against the entry
// price after the proportional fee.
func (st *accountState) exit(date time.Time, price, signal float64, cfg Config) domain.Trade {
	proceeds := float64(st.shares) * price * (1 - cfg.TransactionCost)
	originalCost := float64(st.shares) * st.entryPrice
	profit := proceeds - originalCost
	profitPct := (price - st.entryPrice) / st.entryPrice * 100

	st.cash += proceeds
	shares := st.shares
	st.long = false
	st.shares = 0
	st.entryPrice = 0

	return domain.Trade{
		Action:    domain.TradeSell,
		Date:      date,
		Price:     price,
		Shares:    shares,
		CashDelta: proceeds,
		Signal:    signal,
		CashAfter: st.cash,
		Profit:    profit,
		ProfitPct: profitPct,
	}
}

// Run executes the simulation over the intersection of the signal source's
// aligned dates and the price series, in chronological order. If a position
// is still open after the final date it is force-liquidated at that date's
// close, so every run ends fully in cash. Run is deterministic: identical
// inputs produce identical results.
func (bt *Backtester) Run() (*Result, error) {
	aligned, err := bt.signals.AlignDates()
	if err != nil {
		return nil, fmt.Errorf("aligning dates: %w", err)
	}

	dates := make([]time.Time, 0, len(aligned))
	for _, d := range aligned {
		if _, ok := bt.prices.CloseOn(d); ok {
			dates = append(dates, d)
		}
	}

	st := accountState{cash: bt.cfg.InitialBalance}
	trades := []domain.Trade{}
	curve := make([]domain.EquityPoint, 0, len(dates))
	lastSignal := 0.0

	for _, date := range dates {
		price, _ := bt.prices.CloseOn(date)
		signal, err := bt.signals.CombinedSignal(date)
		if err != nil {
			return nil, fmt.Errorf("combined signal on %s: %w", date.Format("2006-01-02"), err)
		}
		lastSignal = signal

		curve = append(curve, domain.EquityPoint{
			Date:   date,
			Equity: st.cash + float64(st.shares)*price,
		})

		switch {
		case !st.long && signal > bt.cfg.Threshold:
			if trade, ok := st.enter(date, price, signal, bt.cfg); ok {
				trades = append(trades, trade)
			}
		case st.long && signal < -bt.cfg.Threshold:
			trades = append(trades, st.exit(date, price, signal, bt.cfg))
		}
	}

	// End-of-data rule: liquidate any open position at the final close so
	// metrics always see a fully-cash account. No extra equity point is
	// recorded for this trade.
	if st.long {
		last := dates[len(dates)-1]
		price, _ := bt.prices.CloseOn(last)
		trades = append(trades, st.exit(last, price, lastSignal, bt.cfg))
	}

	return &Result{
		Trades:      trades,
		EquityCurve: curve,
		Metrics:     calculateMetrics(bt.cfg.InitialBalance, st.cash, trades, curve),
	}, nil
}
