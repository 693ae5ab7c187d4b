// Command backlab evaluates trading strategies against historical daily
// price data: gather fetches bars into the local store, run executes a
// backtest and prints the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"backlab/internal/backtest"
	"backlab/internal/config"
	"backlab/internal/domain"
	"backlab/internal/gather"
	"backlab/internal/report"
	"backlab/internal/store"
	"backlab/internal/strategy"
	"backlab/internal/util"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: backlab <command> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  gather     Fetch daily bars from Alpaca into the bar store\n")
		fmt.Fprintf(os.Stderr, "  run        Run a backtest and print the results\n")
		fmt.Fprintf(os.Stderr, "  version    Print the version\n")
		fmt.Fprintf(os.Stderr, "\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("backlab %s\n", version)

	case "gather":
		err = gatherCmd(os.Args[2:])

	case "run":
		err = runCmd(os.Args[2:])

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "backlab: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the YAML config at path, or the built-in defaults when
// path is empty, and installs the configured logger.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	util.SetDefault(util.NewLogger(cfg.Logging.Level, cfg.Logging.Format))
	return cfg, nil
}

func gatherCmd(args []string) error {
	fs := flag.NewFlagSet("gather", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config")
	start := fs.String("start", "", "start date (YYYY-MM-DD, default from config)")
	end := fs.String("end", "", "end date (YYYY-MM-DD, default yesterday)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	startDate := cfg.Gather.StartDate
	if *start != "" {
		startDate = *start
	}
	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return fmt.Errorf("parsing start date %q: %w", startDate, err)
	}
	to := time.Now().UTC().AddDate(0, 0, -1)
	if *end != "" {
		to, err = time.Parse("2006-01-02", *end)
		if err != nil {
			return fmt.Errorf("parsing end date %q: %w", *end, err)
		}
	}

	barStore := store.NewParquetStore(cfg.Storage.DataDir)
	g, err := gather.NewAlpacaDaily(gather.AlpacaDailyOptions{
		APIKey:          cfg.Alpaca.APIKey,
		APISecret:       cfg.Alpaca.APISecret,
		DataURL:         cfg.Alpaca.DataURL,
		Symbols:         cfg.Gather.Symbols,
		Range:           gather.DateRange{Start: from, End: to},
		BatchSize:       cfg.Gather.BatchSize,
		RateLimitPerMin: cfg.Gather.RateLimitPerMin,
		MaxAttempts:     cfg.Gather.MaxAttempts,
	}, barStore)
	if err != nil {
		return err
	}
	return g.Run(context.Background())
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config")
	symbol := fs.String("symbol", "", "symbol to backtest (reads the bar store)")
	csvPath := fs.String("csv", "", "date,close CSV file to backtest instead of the bar store")
	start := fs.String("start", "2020-01-01", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD, default today)")
	save := fs.Bool("save", false, "persist the run to the result store")
	chartsDir := fs.String("charts", "", "directory to write equity/drawdown PNG charts")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()

	prices, label, err := loadPrices(ctx, cfg, *symbol, *csvPath, *start, *end)
	if err != nil {
		return err
	}
	if prices.Len() == 0 {
		return fmt.Errorf("no price data for %s", label)
	}

	manager, err := buildManager(cfg, prices)
	if err != nil {
		return err
	}
	if err := manager.RunAll(); err != nil {
		return fmt.Errorf("generating signals: %w", err)
	}

	bt, err := backtest.New(prices, manager, backtest.Config{
		InitialBalance:  cfg.Backtest.InitialBalance,
		Threshold:       cfg.Backtest.Threshold,
		PositionSizePct: cfg.Backtest.PositionSizePct,
		TransactionCost: cfg.Backtest.TransactionCost,
	})
	if err != nil {
		return err
	}
	res, err := bt.Run()
	if err != nil {
		return fmt.Errorf("running backtest: %w", err)
	}

	fmt.Print(report.Summary(cfg.Backtest.InitialBalance, res))

	if *save {
		if err := saveRun(ctx, cfg, label, prices, res); err != nil {
			return err
		}
	}
	if *chartsDir != "" {
		if err := writeCharts(*chartsDir, label, cfg.Backtest.InitialBalance, res); err != nil {
			return err
		}
	}
	return nil
}

// loadPrices builds the input price series from either a CSV file or the
// bar store, returning the series and a label for reporting.
func loadPrices(ctx context.Context, cfg *config.Config, symbol, csvPath, start, end string) (*domain.PriceSeries, string, error) {
	if csvPath != "" {
		prices, err := gather.LoadCSV(csvPath)
		if err != nil {
			return nil, "", err
		}
		return prices, filepath.Base(csvPath), nil
	}

	if symbol == "" {
		return nil, "", fmt.Errorf("either -symbol or -csv is required")
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, "", fmt.Errorf("parsing start date %q: %w", start, err)
	}
	to := time.Now().UTC()
	if end != "" {
		to, err = time.Parse("2006-01-02", end)
		if err != nil {
			return nil, "", fmt.Errorf("parsing end date %q: %w", end, err)
		}
	}

	barStore := store.NewParquetStore(cfg.Storage.DataDir)
	bars, err := barStore.ReadBars(ctx, symbol, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("reading bars for %s: %w", symbol, err)
	}
	prices, err := domain.PriceSeriesFromBars(bars)
	if err != nil {
		return nil, "", fmt.Errorf("building price series for %s: %w", symbol, err)
	}
	return prices, symbol, nil
}

// buildManager constructs the configured strategies over the price series
// and wraps them in a Manager with their weights.
func buildManager(cfg *config.Config, prices *domain.PriceSeries) (*strategy.Manager, error) {
	strategies := make([]strategy.Strategy, 0, len(cfg.Strategies))
	weights := make([]float64, 0, len(cfg.Strategies))
	for _, sc := range cfg.Strategies {
		s, err := strategy.Build(sc.Name, prices, strategy.Params{
			ShortWindow:     sc.ShortWindow,
			LongWindow:      sc.LongWindow,
			FastPeriod:      sc.FastPeriod,
			SlowPeriod:      sc.SlowPeriod,
			SignalPeriod:    sc.SignalPeriod,
			MACDThreshold:   sc.MACDThreshold,
			RSIPeriod:       sc.RSIPeriod,
			Oversold:        sc.Oversold,
			Overbought:      sc.Overbought,
			BollingerWindow: sc.BollingerWindow,
		})
		if err != nil {
			return nil, fmt.Errorf("building strategy %q: %w", sc.Name, err)
		}
		strategies = append(strategies, s)
		weights = append(weights, sc.Weight)
	}
	return strategy.NewManager(strategies, weights)
}

func saveRun(ctx context.Context, cfg *config.Config, label string, prices *domain.PriceSeries, res *backtest.Result) error {
	resultStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		return err
	}
	defer resultStore.Close()

	run := &store.RunRecord{
		Symbol:         label,
		Start:          prices.Date(0),
		End:            prices.Date(prices.Len() - 1),
		InitialBalance: cfg.Backtest.InitialBalance,
		FinalEquity:    res.Metrics.FinalEquity,
		PctReturn:      res.Metrics.PctReturn,
		MaxDrawdown:    res.Metrics.MaxDrawdown,
		WinRate:        res.Metrics.WinRate,
		AvgReturn:      res.Metrics.AvgReturn,
		NumberTrades:   res.Metrics.NumberTrades,
	}
	id, err := resultStore.SaveRun(ctx, run, res.Trades)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	slog.Info("run saved", "id", id, "symbol", label)
	return nil
}

func writeCharts(dir, label string, initialBalance float64, res *backtest.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	equity, err := report.EquityChart(label+" equity", res.EquityCurve)
	if err != nil {
		return fmt.Errorf("rendering equity chart: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "equity.png"), equity, 0o644); err != nil {
		return err
	}

	drawdown, err := report.DrawdownChart(label+" drawdown", initialBalance, res.EquityCurve)
	if err != nil {
		return fmt.Errorf("rendering drawdown chart: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "drawdown.png"), drawdown, 0o644)
}
