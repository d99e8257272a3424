// Package alignment cleans raw per-symbol price history and aligns it onto
// a shared date index.
package alignment

import (
	"math"
	"sort"
	"time"

	"github.com/aristath/quantfolio/internal/domain"
)

// DefaultMaxFillGap is the maximum number of consecutive missing entries a
// forward-fill may bridge. Longer gaps are left unfilled and the affected
// dates fall out of the final index.
const DefaultMaxFillGap = 5

// minAlignedDates is the smallest usable aligned index; a single date
// cannot produce a return.
const minAlignedDates = 2

// Aligner turns dirty per-symbol price histories into a single aligned
// PriceTable.
type Aligner struct {
	maxFillGap int
}

// New creates an Aligner with the default forward-fill gap limit.
func New() *Aligner {
	return NewWithMaxGap(DefaultMaxFillGap)
}

// NewWithMaxGap creates an Aligner with a custom gap limit. Non-positive
// values fall back to the default.
func NewWithMaxGap(maxFillGap int) *Aligner {
	if maxFillGap <= 0 {
		maxFillGap = DefaultMaxFillGap
	}
	return &Aligner{maxFillGap: maxFillGap}
}

// Align cleans every symbol's raw series, outer-joins their date indices,
// forward-fills bounded gaps and intersects down to the dates where every
// symbol has a valid price.
//
// Returns a DataError naming the first (alphabetically) symbol that cleans
// to zero points, or an InsufficientDataError when fewer than two aligned
// dates survive.
func (a *Aligner) Align(raw map[string][]domain.PricePoint) (*domain.PriceTable, error) {
	symbols := make([]string, 0, len(raw))
	for symbol := range raw {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	cleaned := make(map[string][]domain.PricePoint, len(raw))
	for _, symbol := range symbols {
		points := CleanSeries(raw[symbol])
		if len(points) == 0 {
			return nil, &domain.DataError{Symbol: symbol, Reason: "no valid prices after cleaning"}
		}
		cleaned[symbol] = points
	}

	index := unionIndex(cleaned)

	// Forward-fill each symbol across the union index; NaN marks entries
	// that stay missing.
	filled := make(map[string][]float64, len(cleaned))
	for symbol, points := range cleaned {
		filled[symbol] = ForwardFill(index, points, a.maxFillGap)
	}

	// Intersect: keep only dates where every symbol has a value.
	table := &domain.PriceTable{Prices: make(map[string][]float64, len(cleaned))}
	for i := range index {
		complete := true
		for _, values := range filled {
			if math.IsNaN(values[i]) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		table.Dates = append(table.Dates, index[i])
		for symbol, values := range filled {
			table.Prices[symbol] = append(table.Prices[symbol], values[i])
		}
	}

	if table.Len() < minAlignedDates {
		return nil, &domain.InsufficientDataError{Have: table.Len(), Need: minAlignedDates}
	}
	return table, nil
}

// CleanSeries normalizes one symbol's raw observations: dates truncated to
// UTC midnight, sorted ascending, non-finite and non-positive prices
// dropped, duplicate dates deduplicated keeping the first occurrence.
func CleanSeries(points []domain.PricePoint) []domain.PricePoint {
	valid := make([]domain.PricePoint, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
			continue
		}
		valid = append(valid, domain.PricePoint{Date: dateOnly(p.Date), Price: p.Price})
	}

	// Stable sort keeps the first occurrence of a duplicate date ahead.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Date.Before(valid[j].Date)
	})

	cleaned := valid[:0]
	for _, p := range valid {
		if len(cleaned) > 0 && cleaned[len(cleaned)-1].Date.Equal(p.Date) {
			continue
		}
		cleaned = append(cleaned, p)
	}
	return cleaned
}

// ForwardFill projects a cleaned, sorted series onto an index, carrying the
// last observed price across at most maxGap consecutive missing entries.
// Missing entries beyond the gap limit (and entries before the first
// observation) are NaN.
func ForwardFill(index []time.Time, points []domain.PricePoint, maxGap int) []float64 {
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDate[p.Date] = p.Price
	}

	values := make([]float64, len(index))
	last := math.NaN()
	gap := 0
	for i, date := range index {
		if price, ok := byDate[date]; ok {
			values[i] = price
			last = price
			gap = 0
			continue
		}
		gap++
		if !math.IsNaN(last) && gap <= maxGap {
			values[i] = last
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}

func unionIndex(series map[string][]domain.PricePoint) []time.Time {
	seen := make(map[time.Time]bool)
	var index []time.Time
	for _, points := range series {
		for _, p := range points {
			if !seen[p.Date] {
				seen[p.Date] = true
				index = append(index, p.Date)
			}
		}
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })
	return index
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
