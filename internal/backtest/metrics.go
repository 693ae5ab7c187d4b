package backtest

import "backlab/internal/domain"

// Metrics summarizes a completed run. FinalEquity equals ending cash, which
// is the whole account because Run always liquidates before returning.
type Metrics struct {
	FinalEquity    float64
	PctReturn      float64
	NumberTrades   int // BUY and SELL records combined
	ProfitTrades   int // SELL records with positive profit
	UnprofitTrades int // SELL records with profit <= 0
	AvgReturn      float64 // mean realized profit per SELL
	WinRate        float64 // ProfitTrades / NumberTrades
	MaxDrawdown    float64 // percentage, >= 0
}

// calculateMetrics derives summary statistics from the trade log and equity
// curve. Ratios over empty trade logs or curves are defined as 0 rather than
// failing on a zero divisor.
func calculateMetrics(initialBalance, finalCash float64, trades []domain.Trade, curve []domain.EquityPoint) Metrics {
	m := Metrics{
		FinalEquity:  finalCash,
		PctReturn:    (finalCash - initialBalance) / initialBalance * 100,
		NumberTrades: len(trades),
	}

	sells := 0
	totalProfit := 0.0
	for _, t := range trades {
		if t.Action != domain.TradeSell {
			continue
		}
		sells++
		totalProfit += t.Profit
		if t.Profit > 0 {
			m.ProfitTrades++
		} else {
			m.UnprofitTrades++
		}
	}

	if sells > 0 {
		m.AvgReturn = totalProfit / float64(sells)
	}
	if m.NumberTrades > 0 {
		m.WinRate = float64(m.ProfitTrades) / float64(m.NumberTrades)
	}
	m.MaxDrawdown = maxDrawdown(initialBalance, curve)
	return m
}

// maxDrawdown runs the running-peak algorithm over the equity curve in date
// order, with the peak seeded at the initial balance. Result is a percentage
// decline, 0 for an empty curve.
func maxDrawdown(initialBalance float64, curve []domain.EquityPoint) float64 {
	peak := initialBalance
	worst := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		drawdown := (peak - p.Equity) / peak * 100
		if drawdown > worst {
			worst = drawdown
		}
	}
	return worst
}
