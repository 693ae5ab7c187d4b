// Package report renders backtest results for humans: a fixed-width text
// summary and PNG charts of the equity curve and drawdown.
package report

import (
	"fmt"
	"strings"

	"backlab/internal/backtest"
	"backlab/internal/domain"
)

// maxRecentTrades is how many trailing trades the summary shows.
const maxRecentTrades = 5

// Summary renders the backtest result as a fixed-width text report.
func Summary(initialBalance float64, res *backtest.Result) string {
	m := res.Metrics
	rule := strings.Repeat("=", 70)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "BACKTEST RESULTS")
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b, "PERFORMANCE:")
	fmt.Fprintf(&b, "   Initial Balance: $%.2f\n", initialBalance)
	fmt.Fprintf(&b, "   Final Balance:   $%.2f\n", m.FinalEquity)
	fmt.Fprintf(&b, "   Total Return:    %.2f%%\n", m.PctReturn)
	fmt.Fprintf(&b, "   Max Drawdown:    %.2f%%\n", m.MaxDrawdown)

	fmt.Fprintln(&b, "TRADING ACTIVITY:")
	fmt.Fprintf(&b, "   Total Trades:     %d\n", m.NumberTrades)
	fmt.Fprintf(&b, "   Winning Trades:   %d\n", m.ProfitTrades)
	fmt.Fprintf(&b, "   Losing Trades:    %d\n", m.UnprofitTrades)
	fmt.Fprintf(&b, "   Win Rate:         %.1f%%\n", m.WinRate*100)
	fmt.Fprintf(&b, "   Avg Trade Profit: $%.2f\n", m.AvgReturn)

	if len(res.Trades) > 0 {
		fmt.Fprintln(&b, "RECENT TRADES:")
		start := len(res.Trades) - maxRecentTrades
		if start < 0 {
			start = 0
		}
		for _, t := range res.Trades[start:] {
			if t.Action == domain.TradeSell {
				fmt.Fprintf(&b, "   %s | %-4s | $%7.2f x %3d shares | Profit: $%8.2f\n",
					t.Date.Format("2006-01-02"), t.Action, t.Price, t.Shares, t.Profit)
			} else {
				fmt.Fprintf(&b, "   %s | %-4s | $%7.2f x %3d shares\n",
					t.Date.Format("2006-01-02"), t.Action, t.Price, t.Shares)
			}
		}
	}
	fmt.Fprintln(&b, rule)
	return b.String()
}
