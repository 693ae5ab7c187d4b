package gather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"backlab/internal/domain"
	"backlab/internal/store"
	"backlab/internal/util"
)

// Compile-time interface check.
var _ Gatherer = (*AlpacaDaily)(nil)

// AlpacaDaily gathers daily OHLCV bars for a fixed symbol list via the
// Alpaca market-data API and writes them to the bar store.
type AlpacaDaily struct {
	client      *marketdata.Client
	store       store.BarStore
	symbols     []string
	dateRange   DateRange
	batchSize   int
	maxAttempts int
	limiter     *util.RateLimiter
	log         *slog.Logger
}

// AlpacaDailyOptions configures an AlpacaDaily gatherer.
type AlpacaDailyOptions struct {
	APIKey          string
	APISecret       string
	DataURL         string
	Symbols         []string
	Range           DateRange
	BatchSize       int // symbols per API call
	RateLimitPerMin int
	MaxAttempts     int
}

// NewAlpacaDaily creates an AlpacaDaily gatherer writing to the given store.
func NewAlpacaDaily(opts AlpacaDailyOptions, s store.BarStore) (*AlpacaDaily, error) {
	if len(opts.Symbols) == 0 {
		return nil, fmt.Errorf("alpaca gatherer: no symbols configured")
	}
	if opts.Range.Start.After(opts.Range.End) {
		return nil, fmt.Errorf("alpaca gatherer: start %s after end %s",
			opts.Range.Start.Format("2006-01-02"), opts.Range.End.Format("2006-01-02"))
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}

	clientOpts := marketdata.ClientOpts{
		APIKey:    opts.APIKey,
		APISecret: opts.APISecret,
	}
	if opts.DataURL != "" {
		clientOpts.BaseURL = opts.DataURL
	}

	return &AlpacaDaily{
		client:      marketdata.NewClient(clientOpts),
		store:       s,
		symbols:     opts.Symbols,
		dateRange:   opts.Range,
		batchSize:   opts.BatchSize,
		maxAttempts: opts.MaxAttempts,
		limiter:     util.NewRateLimiter(opts.RateLimitPerMin),
		log:         slog.Default().With("gatherer", "alpaca-daily"),
	}, nil
}

// Name returns the gatherer identifier.
func (g *AlpacaDaily) Name() string { return "alpaca-daily" }

// Run fetches daily bars for the configured symbols in batches and writes
// them to the bar store. Each batch is retried with backoff on API errors.
func (g *AlpacaDaily) Run(ctx context.Context) error {
	started := time.Now()
	total := 0

	for i := 0; i < len(g.symbols); i += g.batchSize {
		end := min(i+g.batchSize, len(g.symbols))
		batch := g.symbols[i:end]

		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}

		var bars []domain.Bar
		err := util.Retry(ctx, g.maxAttempts, time.Second, func() error {
			var ferr error
			bars, ferr = g.fetchMultiBars(batch)
			return ferr
		})
		if err != nil {
			return fmt.Errorf("fetching bars for batch %v: %w", batch, err)
		}

		if err := g.store.WriteBars(ctx, bars); err != nil {
			return fmt.Errorf("writing bars: %w", err)
		}
		total += len(bars)
		g.log.Info("batch stored", "symbols", len(batch), "bars", len(bars))
	}

	g.log.Info("complete",
		"symbols", len(g.symbols),
		"bars", total,
		"elapsed", time.Since(started).Round(time.Second),
	)
	return nil
}

// fetchMultiBars fetches daily bars for multiple symbols in one API call.
func (g *AlpacaDaily) fetchMultiBars(symbols []string) ([]domain.Bar, error) {
	multiBars, err := g.client.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     g.dateRange.Start,
		End:       g.dateRange.End,
	})
	if err != nil {
		return nil, fmt.Errorf("GetMultiBars: %w", err)
	}

	var bars []domain.Bar
	for symbol, alpacaBars := range multiBars {
		for _, ab := range alpacaBars {
			bars = append(bars, domain.Bar{
				Symbol:     strings.ToUpper(symbol),
				Timestamp:  ab.Timestamp,
				Open:       ab.Open,
				High:       ab.High,
				Low:        ab.Low,
				Close:      ab.Close,
				Volume:     int64(ab.Volume),
				TradeCount: int64(ab.TradeCount),
				VWAP:       ab.VWAP,
			})
		}
	}
	return bars, nil
}
