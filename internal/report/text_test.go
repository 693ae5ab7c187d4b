package report

import (
	"strings"
	"testing"
	"time"

	"backlab/internal/backtest"
	"backlab/internal/domain"
)

func TestSummary(t *testing.T) {
	res := &backtest.Result{
		Trades: []domain.Trade{
			{
				Action: domain.TradeBuy, Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
				Price: 110, Shares: 9,
			},
			{
				Action: domain.TradeSell, Date: time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC),
				Price: 133.1, Shares: 9, Profit: 207.9, ProfitPct: 21,
			},
		},
		Metrics: backtest.Metrics{
			FinalEquity:    1207.9,
			PctReturn:      20.79,
			NumberTrades:   2,
			ProfitTrades:   1,
			UnprofitTrades: 1,
			AvgReturn:      207.9,
			WinRate:        0.5,
			MaxDrawdown:    4.2,
		},
	}

	out := Summary(1000, res)

	for _, want := range []string{
		"BACKTEST RESULTS",
		"$1000.00",
		"$1207.90",
		"20.79%",
		"4.20%",
		"Win Rate:         50.0%",
		"2024-03-05 | BUY",
		"2024-06-28 | SELL",
		"207.90",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryNoTrades(t *testing.T) {
	res := &backtest.Result{
		Metrics: backtest.Metrics{FinalEquity: 1000},
	}
	out := Summary(1000, res)

	if strings.Contains(out, "RECENT TRADES") {
		t.Error("summary lists trades for an empty trade log")
	}
	if !strings.Contains(out, "Total Trades:     0") {
		t.Errorf("summary missing zero trade count:\n%s", out)
	}
}

func TestSummaryShowsOnlyRecentTrades(t *testing.T) {
	var trades []domain.Trade
	for i := 0; i < 8; i++ {
		trades = append(trades, domain.Trade{
			Action: domain.TradeBuy,
			Date:   time.Date(2024, time.January, i+1, 0, 0, 0, 0, time.UTC),
			Price:  100, Shares: 1,
		})
	}
	out := Summary(1000, &backtest.Result{Trades: trades, Metrics: backtest.Metrics{NumberTrades: 8}})

	if strings.Contains(out, "2024-01-03 |") {
		t.Error("summary shows trades older than the recent window")
	}
	if !strings.Contains(out, "2024-01-08 |") {
		t.Errorf("summary missing the latest trade:\n%s", out)
	}
}
