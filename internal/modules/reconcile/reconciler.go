// Package reconcile cross-validates metric results produced by two
// independent engines over the same inputs.
//
// Reconciliation is advisory: it annotates the analysis output with how far
// the methodologies drifted apart, it never blocks it. Some divergence is
// expected because the engines filter "time in market" differently.
package reconcile

import (
	"math"

	"github.com/aristath/quantfolio/internal/domain"
)

// Classification buckets a per-metric difference between the two engines.
type Classification string

const (
	// MatchPerfect means the engines agree exactly, including agreeing
	// that a metric is degenerate.
	MatchPerfect Classification = "perfect"
	// MatchAcceptable means the relative difference is within tolerance.
	MatchAcceptable Classification = "acceptable"
	// MatchDivergent means the difference exceeds tolerance and needs
	// investigation.
	MatchDivergent Classification = "divergent"
)

// DefaultTolerancePct is the relative-difference threshold (in percent)
// separating acceptable from divergent.
const DefaultTolerancePct = 5.0

// Comparison is the per-metric reconciliation verdict.
type Comparison struct {
	Metric          string         `json:"metric"`
	Custom          *float64       `json:"custom"`
	Reference       *float64       `json:"reference"`
	RelativeDiffPct *float64       `json:"relative_diff_pct"`
	Class           Classification `json:"classification"`
}

// Report is the full reconciliation result for one symbol.
type Report struct {
	Symbol      string       `json:"symbol"`
	Comparisons []Comparison `json:"comparisons"`
}

// Divergent reports whether any metric diverged beyond tolerance.
func (r *Report) Divergent() bool {
	for _, c := range r.Comparisons {
		if c.Class == MatchDivergent {
			return true
		}
	}
	return false
}

// Reconciler compares custom and reference metric results.
type Reconciler struct {
	tolerancePct float64
}

// New creates a Reconciler. A non-positive tolerance falls back to
// DefaultTolerancePct.
func New(tolerancePct float64) *Reconciler {
	if tolerancePct <= 0 {
		tolerancePct = DefaultTolerancePct
	}
	return &Reconciler{tolerancePct: tolerancePct}
}

// Compare reconciles the four metrics of one symbol. Both results must come
// from the same input series; the caller guarantees that.
func (r *Reconciler) Compare(custom, reference domain.MetricResult) Report {
	report := Report{Symbol: custom.Symbol}
	report.Comparisons = []Comparison{
		r.compare(domain.MetricTotalReturn, &custom.TotalReturn, &reference.TotalReturn),
		r.compare(domain.MetricCAGR, custom.CAGR, reference.CAGR),
		r.compare(domain.MetricSharpe, custom.Sharpe, reference.Sharpe),
		r.compare(domain.MetricSortino, custom.Sortino, reference.Sortino),
	}
	return report
}

// compare classifies one metric pair. Nil means the engine reported the
// metric as degenerate: two nils agree perfectly, a single nil is a
// methodological disagreement and counts as divergent.
func (r *Reconciler) compare(metric string, custom, reference *float64) Comparison {
	c := Comparison{Metric: metric, Custom: custom, Reference: reference}

	switch {
	case custom == nil && reference == nil:
		c.Class = MatchPerfect
	case custom == nil || reference == nil:
		c.Class = MatchDivergent
	default:
		c.RelativeDiffPct, c.Class = r.classify(*custom, *reference)
	}
	return c
}

func (r *Reconciler) classify(custom, reference float64) (*float64, Classification) {
	if custom == reference {
		zero := 0.0
		return &zero, MatchPerfect
	}
	if reference == 0 {
		// Relative difference against zero is undefined; any non-zero
		// disagreement with a zero reference needs investigation.
		return nil, MatchDivergent
	}
	diff := math.Abs(custom-reference) / math.Abs(reference) * 100
	switch {
	case diff == 0:
		return &diff, MatchPerfect
	case diff <= r.tolerancePct:
		return &diff, MatchAcceptable
	default:
		return &diff, MatchDivergent
	}
}
