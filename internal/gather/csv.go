package gather

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"backlab/internal/domain"
)

// LoadCSV reads a date,close CSV file (header row required, dates formatted
// YYYY-MM-DD in ascending order) into a PriceSeries, for runs against local
// data instead of the bar store.
func LoadCSV(path string) (*domain.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	dates := make([]time.Time, 0, len(rows)-1)
	closes := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s row %d: want date,close", path, i+2)
		}
		d, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parsing date %q: %w", path, i+2, row[0], err)
		}
		c, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parsing close %q: %w", path, i+2, row[1], err)
		}
		dates = append(dates, d)
		closes = append(closes, c)
	}

	series, err := domain.NewPriceSeries(dates, closes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}
