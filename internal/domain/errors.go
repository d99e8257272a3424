package domain

import (
	"fmt"
	"time"
)

// DataError indicates that a symbol has no usable data after cleaning, or
// that its raw data is unusable for some other reason. It aborts the whole
// analysis; no partial multi-symbol results are returned.
type DataError struct {
	Symbol string
	Reason string
}

func (e *DataError) Error() string {
	switch {
	case e.Symbol == "":
		return fmt.Sprintf("unusable data: %s", e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("no usable data for symbol %s", e.Symbol)
	default:
		return fmt.Sprintf("no usable data for symbol %s: %s", e.Symbol, e.Reason)
	}
}

// InsufficientDataError indicates that the aligned series is too short for
// any meaningful computation.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d aligned dates, need at least %d", e.Have, e.Need)
}

// DateRangeError indicates an invalid analysis date range.
type DateRangeError struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("invalid date range %s to %s: %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.Reason)
}
