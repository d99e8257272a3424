package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// ReferenceEngine is the independent cross-validation methodology, built on
// gonum/stat. It follows the reference library's conventions where they
// differ from the in-house ones:
//
//   - Sortino clips excess returns at zero from the second observation on
//     and takes the SAMPLE standard deviation of the clipped series, instead
//     of the in-house sum-of-negative-squares over the total count.
//   - CAGR is derived from the same compounded growth factor but is the
//     price-ratio formulation: factor^(1/yearFrac) - 1.
//
// On a typical series the two engines agree to well under the reconciler's
// tolerance on total return, CAGR and Sharpe, and diverge a few percent on
// Sortino.
type ReferenceEngine struct{}

// NewReferenceEngine creates the gonum-backed reference engine.
func NewReferenceEngine() *ReferenceEngine {
	return &ReferenceEngine{}
}

// Name implements domain.MetricEngine.
func (e *ReferenceEngine) Name() domain.EngineName {
	return domain.EngineReference
}

// Compute calculates all metrics for one symbol's date-matched returns.
func (e *ReferenceEngine) Compute(series domain.ReturnSeries, rfDaily float64) domain.MetricResult {
	result := newResult(series, domain.EngineReference)

	result.TotalReturn = formulas.CompoundGrowth(series.Values) - 1

	if cagr, ok := e.cagr(series); ok {
		result.CAGR = ptr(cagr)
	} else {
		result.Degenerate = append(result.Degenerate, domain.MetricCAGR)
	}

	excess := formulas.ExcessReturns(series.Values, rfDaily)

	if sharpe, ok := e.sharpe(excess); ok {
		result.Sharpe = ptr(sharpe)
	} else {
		result.Degenerate = append(result.Degenerate, domain.MetricSharpe)
	}

	if sortino, ok := e.sortino(excess); ok {
		result.Sortino = ptr(sortino)
	} else {
		result.Degenerate = append(result.Degenerate, domain.MetricSortino)
	}

	return result
}

func (e *ReferenceEngine) cagr(series domain.ReturnSeries) (float64, bool) {
	if len(series.Values) < 2 {
		return 0, false
	}
	years := yearFrac(series)
	if years <= 0 {
		return 0, false
	}
	factor := formulas.CompoundGrowth(series.Values)
	if factor <= 0 {
		return 0, false
	}
	cagr := math.Pow(factor, 1/years) - 1
	return cagr, finite(cagr)
}

func (e *ReferenceEngine) sharpe(excess []float64) (float64, bool) {
	if len(excess) < 2 {
		return 0, false
	}
	std := stat.StdDev(excess, nil)
	if std == 0 || math.IsNaN(std) {
		return 0, false
	}
	sharpe := stat.Mean(excess, nil) / std * annualizationFactor
	return sharpe, finite(sharpe)
}

func (e *ReferenceEngine) sortino(excess []float64) (float64, bool) {
	// The clipped series starts at the second observation, so a sample
	// standard deviation needs at least three excess returns.
	if len(excess) < 3 {
		return 0, false
	}
	clipped := make([]float64, len(excess)-1)
	for i, r := range excess[1:] {
		clipped[i] = math.Min(r, 0)
	}
	std := stat.StdDev(clipped, nil)
	if std == 0 || math.IsNaN(std) {
		return 0, false
	}
	sortino := stat.Mean(excess, nil) / std * annualizationFactor
	return sortino, finite(sortino)
}
