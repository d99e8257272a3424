// Package analysis orchestrates the full price-to-metrics pipeline for
// independent analysis requests.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/internal/modules/alignment"
	"github.com/aristath/quantfolio/internal/modules/reconcile"
	"github.com/aristath/quantfolio/internal/modules/returns"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// DefaultMaxConcurrent caps how many analyses run at the same time when the
// caller does not configure a limit.
const DefaultMaxConcurrent = 4

// Options tunes the service. Zero values fall back to defaults.
type Options struct {
	MaxConcurrent int     // simultaneous analyses (default 4)
	MaxFillGap    int     // forward-fill gap limit (default 5)
	TolerancePct  float64 // reconciliation tolerance (default 5.0)
}

// Service runs analysis requests end to end: fetch, align, derive returns,
// compute metrics with both engines, reconcile.
//
// Requests are independent; the pipeline holds no shared mutable state. The
// semaphore is the service-layer concurrency cap, the pipeline itself is
// synchronous. The core computation stages do no logging; the service logs
// around them.
type Service struct {
	source     domain.PriceSource
	aligner    *alignment.Aligner
	calculator *returns.Calculator
	custom     domain.MetricEngine
	reference  domain.MetricEngine
	reconciler *reconcile.Reconciler
	sem        chan struct{}
	log        zerolog.Logger
}

// NewService wires the pipeline around an injected price source.
func NewService(source domain.PriceSource, custom, reference domain.MetricEngine, opts Options, log zerolog.Logger) *Service {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Service{
		source:     source,
		aligner:    alignment.NewWithMaxGap(opts.MaxFillGap),
		calculator: returns.New(),
		custom:     custom,
		reference:  reference,
		reconciler: reconcile.New(opts.TolerancePct),
		sem:        make(chan struct{}, maxConcurrent),
		log:        log.With().Str("service", "analysis").Logger(),
	}
}

// Analyze runs one request through the whole pipeline. Preprocessing
// failures (bad request, unusable data, too-short aligned series) abort the
// request; per-metric degeneracies do not.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(&req, time.Now().UTC()); err != nil {
		return nil, err
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	id := uuid.NewString()
	log := s.log.With().Str("analysis_id", id).Logger()
	log.Info().
		Strs("symbols", req.Symbols).
		Time("start", req.Start).
		Time("end", req.End).
		Float64("risk_free_pct", req.RiskFreeRatePct).
		Msg("Starting analysis")

	raw, err := s.source.DailyPrices(ctx, req.Symbols, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	prices, err := s.aligner.Align(raw)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("aligned_dates", prices.Len()).Msg("Aligned price table")

	returnTable, err := s.calculator.Daily(prices)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("observations", returnTable.Len()).
		Time("effective_start", effectiveStart(returnTable)).
		Msg("Computed date-matched returns")

	rfDaily := formulas.DailyRiskFreeRate(req.RiskFreeRatePct / 100)

	result := &Result{
		ID:                id,
		Request:           req,
		RiskFreeDaily:     rfDaily,
		Prices:            prices,
		Returns:           returnTable,
		CumulativeReturns: s.calculator.Cumulative(returnTable),
		Metrics:           make(map[string]domain.MetricResult, len(req.Symbols)),
		ReferenceMetrics:  make(map[string]domain.MetricResult, len(req.Symbols)),
	}

	for _, symbol := range returnTable.Symbols() {
		series := returnTable.Series(symbol)
		custom := s.custom.Compute(series, rfDaily)
		reference := s.reference.Compute(series, rfDaily)
		result.Metrics[symbol] = custom
		result.ReferenceMetrics[symbol] = reference

		report := s.reconciler.Compare(custom, reference)
		result.Reconciliation = append(result.Reconciliation, report)
		if report.Divergent() {
			log.Warn().Str("symbol", symbol).Msg("Metric methodologies diverged beyond tolerance")
		}
		if len(custom.Degenerate) > 0 {
			log.Warn().
				Str("symbol", symbol).
				Strs("metrics", custom.Degenerate).
				Msg("Degenerate metrics reported")
		}
	}

	result.Correlations = s.correlations(returnTable)
	result.Summary = s.summarize(prices, returnTable)

	log.Info().Int("symbols", len(result.Metrics)).Msg("Analysis complete")
	return result, nil
}

// correlations builds the pairwise Pearson correlation matrix of the
// date-matched daily returns.
func (s *Service) correlations(table *domain.ReturnTable) map[string]map[string]float64 {
	symbols := table.Symbols()
	matrix := make(map[string]map[string]float64, len(symbols))
	for _, a := range symbols {
		matrix[a] = make(map[string]float64, len(symbols))
		for _, b := range symbols {
			if a == b {
				matrix[a][b] = 1
				continue
			}
			matrix[a][b] = formulas.Correlation(table.Returns[a], table.Returns[b])
		}
	}
	return matrix
}

func (s *Service) summarize(prices *domain.PriceTable, table *domain.ReturnTable) Summary {
	summary := Summary{
		RawObservations:       prices.Len(),
		EffectiveObservations: table.Len(),
		Symbols:               make(map[string]SymbolSummary, len(prices.Prices)),
	}
	if prices.Len() > 0 {
		summary.RawStart = prices.Dates[0]
		summary.RawEnd = prices.Dates[prices.Len()-1]
	}
	if table.Len() > 0 {
		summary.EffectiveStart = table.Dates[0]
		summary.EffectiveEnd = table.Dates[table.Len()-1]
	}
	for symbol, values := range prices.Prices {
		summary.Symbols[symbol] = SymbolSummary{
			FirstPrice: values[0],
			LastPrice:  values[len(values)-1],
		}
	}
	return summary
}

func effectiveStart(table *domain.ReturnTable) time.Time {
	if table.Len() == 0 {
		return time.Time{}
	}
	return table.Dates[0]
}
