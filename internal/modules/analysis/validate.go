package analysis

import (
	"regexp"
	"strings"
	"time"

	"github.com/aristath/quantfolio/internal/domain"
)

const (
	// MaxSymbols caps how many securities a single analysis may cover.
	MaxSymbols = 10
	// MinRangeDays is the shortest date range that yields a meaningful
	// analysis.
	MinRangeDays = 30
)

// earliestStart is the floor for analysis start dates.
var earliestStart = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.^-]+$`)

// validateRequest normalizes the request in place (trimmed, upper-cased,
// deduplicated symbols) and checks it against the input contract. Symbol
// problems surface as DataError, date problems as DateRangeError.
func validateRequest(req *Request, now time.Time) error {
	var symbols []string
	seen := make(map[string]bool)
	for _, raw := range req.Symbols {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" || seen[symbol] {
			continue
		}
		if !symbolPattern.MatchString(symbol) {
			return &domain.DataError{Symbol: symbol, Reason: "invalid symbol format"}
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	if len(symbols) == 0 {
		return &domain.DataError{Reason: "no symbols provided"}
	}
	if len(symbols) > MaxSymbols {
		return &domain.DataError{Reason: "too many symbols (maximum 10)"}
	}
	req.Symbols = symbols

	start, end := req.Start, req.End
	switch {
	case start.IsZero() || end.IsZero():
		return &domain.DateRangeError{Start: start, End: end, Reason: "start and end dates are required"}
	case !start.Before(end):
		return &domain.DateRangeError{Start: start, End: end, Reason: "start date must be before end date"}
	case start.Before(earliestStart):
		return &domain.DateRangeError{Start: start, End: end, Reason: "start date before 1970-01-01"}
	case end.After(now):
		return &domain.DateRangeError{Start: start, End: end, Reason: "end date cannot be in the future"}
	case end.Sub(start) < MinRangeDays*24*time.Hour:
		return &domain.DateRangeError{Start: start, End: end, Reason: "date range shorter than 30 days"}
	}
	return nil
}
