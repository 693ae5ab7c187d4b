package strategy

import (
	"fmt"
	"strings"

	"backlab/internal/domain"
)

// Params expresses the tunable knobs accepted by the strategy constructors.
// Zero-valued fields fall back to the defaults below.
type Params struct {
	// Moving-average crossover.
	ShortWindow int
	LongWindow  int

	// MACD.
	FastPeriod    int
	SlowPeriod    int
	SignalPeriod  int
	MACDThreshold float64

	// RSI.
	RSIPeriod  int
	Oversold   float64
	Overbought float64

	// Bollinger Bands.
	BollingerWindow int
}

// withDefaults fills any zero-valued field with the corresponding default.
func (p Params) withDefaults() Params {
	if p.ShortWindow == 0 {
		p.ShortWindow = 5
	}
	if p.LongWindow == 0 {
		p.LongWindow = 20
	}
	if p.FastPeriod == 0 {
		p.FastPeriod = 8
	}
	if p.SlowPeriod == 0 {
		p.SlowPeriod = 17
	}
	if p.SignalPeriod == 0 {
		p.SignalPeriod = 7
	}
	if p.MACDThreshold == 0 {
		p.MACDThreshold = 0.5
	}
	if p.RSIPeriod == 0 {
		p.RSIPeriod = 14
	}
	if p.Oversold == 0 {
		p.Oversold = 30
	}
	if p.Overbought == 0 {
		p.Overbought = 70
	}
	if p.BollingerWindow == 0 {
		p.BollingerWindow = 20
	}
	return p
}

// Build constructs the named strategy over the given price series. Known
// names: "ma-cross", "macd", "rsi", "bollinger".
func Build(name string, prices *domain.PriceSeries, params Params) (Strategy, error) {
	p := params.withDefaults()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ma-cross":
		return NewMACrossover(prices, p.ShortWindow, p.LongWindow)
	case "macd":
		return NewMACD(prices, p.FastPeriod, p.SlowPeriod, p.SignalPeriod, p.MACDThreshold)
	case "rsi":
		return NewRSI(prices, p.RSIPeriod, p.Oversold, p.Overbought)
	case "bollinger":
		return NewBollingerBands(prices, p.BollingerWindow)
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
