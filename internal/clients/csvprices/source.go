// Package csvprices provides a file-backed price source.
//
// The file is a wide daily-price CSV, the same shape the report layer's
// exporter produces: a "date" column in YYYY-MM-DD format followed by one
// column per symbol. Blank or unparseable cells are treated as missing;
// cleaning is the aligner's job, not this package's.
package csvprices

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/quantfolio/internal/domain"
)

const dateLayout = "2006-01-02"

// Source reads daily prices from a CSV file on each request.
type Source struct {
	path string
}

// New creates a Source backed by the given CSV file.
func New(path string) *Source {
	return &Source{path: path}
}

// DailyPrices implements domain.PriceSource. A requested symbol missing
// from the file's header fails the request with a DataError; rows outside
// the inclusive [start, end] range are skipped.
func (s *Source) DailyPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read price file header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, symbol := range symbols {
		if _, ok := columns[symbol]; !ok {
			return nil, &domain.DataError{Symbol: symbol, Reason: "not present in price file"}
		}
	}

	result := make(map[string][]domain.PricePoint, len(symbols))
	for _, symbol := range symbols {
		result[symbol] = nil
	}

	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if len(record) == 0 {
			continue
		}
		date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(record[0]), time.UTC)
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		for _, symbol := range symbols {
			idx := columns[symbol]
			if idx >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[idx])
			if cell == "" {
				continue
			}
			price, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			result[symbol] = append(result[symbol], domain.PricePoint{Date: date, Price: price})
		}
	}

	return result, nil
}
