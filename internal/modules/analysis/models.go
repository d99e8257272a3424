package analysis

import (
	"time"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/internal/modules/reconcile"
)

// Request describes one analysis: which symbols, over which inclusive
// calendar date range, against which annual risk-free rate.
//
// RiskFreeRatePct is expressed as an annual percentage (5.0 means 5%); it
// is normalized to a fraction internally.
type Request struct {
	Symbols         []string  `json:"symbols"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	RiskFreeRatePct float64   `json:"risk_free_rate_pct"`
}

// SymbolSummary carries per-symbol boundary prices for the report layer.
type SymbolSummary struct {
	FirstPrice float64 `json:"first_price"`
	LastPrice  float64 `json:"last_price"`
}

// Summary describes the raw vs effective analysis window. The effective
// window starts at the shared date-matched start, which can be later than
// the raw aligned start.
type Summary struct {
	RawStart              time.Time                `json:"raw_start"`
	RawEnd                time.Time                `json:"raw_end"`
	EffectiveStart        time.Time                `json:"effective_start"`
	EffectiveEnd          time.Time                `json:"effective_end"`
	RawObservations       int                      `json:"raw_observations"`
	EffectiveObservations int                      `json:"effective_observations"`
	Symbols               map[string]SymbolSummary `json:"symbols"`
}

// Result is the full output of one analysis request. The aligned prices,
// return series and cumulative returns are included because the external
// CSV-export and charting collaborators consume them; nothing here is
// persisted by the pipeline itself.
type Result struct {
	ID                string                         `json:"id"`
	Request           Request                        `json:"request"`
	RiskFreeDaily     float64                        `json:"risk_free_daily"`
	Prices            *domain.PriceTable             `json:"prices"`
	Returns           *domain.ReturnTable            `json:"returns"`
	CumulativeReturns map[string][]float64           `json:"cumulative_returns"`
	Metrics           map[string]domain.MetricResult `json:"metrics"`
	ReferenceMetrics  map[string]domain.MetricResult `json:"reference_metrics"`
	Reconciliation    []reconcile.Report             `json:"reconciliation"`
	Correlations      map[string]map[string]float64  `json:"correlations"`
	Summary           Summary                        `json:"summary"`
}
