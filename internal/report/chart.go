package report

import (
	"errors"

	"github.com/vicanso/go-charts/v2"

	"backlab/internal/domain"
)

// EquityChart renders the equity curve as a PNG line chart.
func EquityChart(title string, curve []domain.EquityPoint) ([]byte, error) {
	if len(curve) < 2 {
		return nil, errors.New("not enough equity points")
	}

	labels := make([]string, len(curve))
	values := make([]float64, len(curve))
	yMin, yMax := curve[0].Equity, curve[0].Equity
	for i, p := range curve {
		labels[i] = p.Date.Format("2006-01-02")
		values[i] = p.Equity
		if p.Equity < yMin {
			yMin = p.Equity
		}
		if p.Equity > yMax {
			yMax = p.Equity
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// DrawdownChart renders the running drawdown (percent below the peak, peak
// seeded at the initial balance) as a PNG line chart.
func DrawdownChart(title string, initialBalance float64, curve []domain.EquityPoint) ([]byte, error) {
	if len(curve) < 2 {
		return nil, errors.New("not enough equity points")
	}

	labels := make([]string, len(curve))
	values := make([]float64, len(curve))
	peak := initialBalance
	yMax := 0.0
	for i, p := range curve {
		labels[i] = p.Date.Format("2006-01-02")
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := (peak - p.Equity) / peak * 100
		values[i] = dd
		if dd > yMax {
			yMax = dd
		}
	}
	yMin := 0.0
	if yMax == 0 {
		yMax = 1
	}

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
