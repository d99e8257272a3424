// Package main is the entry point for the quantfolio analysis runner.
// It loads configuration, runs one portfolio performance analysis through
// the preprocessing + metrics + reconciliation pipeline and writes the
// result as a JSON artifact for the external report and charting layers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aristath/quantfolio/internal/clients/csvprices"
	"github.com/aristath/quantfolio/internal/config"
	"github.com/aristath/quantfolio/internal/modules/analysis"
	"github.com/aristath/quantfolio/internal/modules/metrics"
	"github.com/aristath/quantfolio/internal/modules/reconcile"
	"github.com/aristath/quantfolio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	service := analysis.NewService(
		csvprices.New(cfg.PricesCSV),
		metrics.NewCustomEngine(),
		metrics.NewReferenceEngine(),
		analysis.Options{
			MaxConcurrent: cfg.MaxConcurrent,
			MaxFillGap:    cfg.MaxFillGap,
			TolerancePct:  cfg.TolerancePct,
		},
		log,
	)

	result, err := service.Analyze(context.Background(), analysis.Request{
		Symbols:         cfg.Symbols,
		Start:           cfg.StartDate,
		End:             cfg.EndDate,
		RiskFreeRatePct: cfg.RiskFreePct,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	for _, symbol := range result.Returns.Symbols() {
		m := result.Metrics[symbol]
		event := log.Info().
			Str("symbol", symbol).
			Float64("total_return", m.TotalReturn).
			Int("sample_size", m.SampleSize).
			Float64("time_in_market", m.TimeInMarket())
		if m.CAGR != nil {
			event = event.Float64("cagr", *m.CAGR)
		}
		if m.Sharpe != nil {
			event = event.Float64("sharpe", *m.Sharpe)
		}
		if m.Sortino != nil {
			event = event.Float64("sortino", *m.Sortino)
		}
		event.Msg("Metrics")
	}

	for _, report := range result.Reconciliation {
		for _, c := range report.Comparisons {
			event := log.Info().
				Str("symbol", report.Symbol).
				Str("metric", c.Metric).
				Str("classification", string(c.Class))
			if c.RelativeDiffPct != nil {
				event = event.Float64("relative_diff_pct", *c.RelativeDiffPct)
			}
			if c.Class == reconcile.MatchDivergent {
				event.Msg("Cross-validation divergence")
			} else {
				event.Msg("Cross-validation")
			}
		}
	}

	path, err := writeArtifact(cfg.ReportsDir, result)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write analysis artifact")
	}
	log.Info().Str("path", path).Msg("Analysis artifact written")
}

// writeArtifact writes the full analysis result as a JSON file named after
// the analysis ID.
func writeArtifact(dir string, result *analysis.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("analysis_%s.json", result.ID))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write analysis result: %w", err)
	}
	return path, nil
}
