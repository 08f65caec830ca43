package verdict

import (
	"github.com/montanaflynn/stats"

	"skynull/domain/core"
)

// Status represents the outcome of ranking an observed statistic against its
// null ensemble.
type Status string

const (
	StatusSignificant Status = "significant"
	StatusMarginal    Status = "marginal"
	StatusConsistent  Status = "consistent_with_isotropy"
)

// Reason explains the status in one word more than the p-value does.
type Reason string

const (
	ReasonBeyondNulls        Reason = "beyond_null_distribution"
	ReasonMarginallyExtreme  Reason = "marginally_extreme"
	ReasonWithinNullScatter  Reason = "within_null_scatter"
	ReasonDegenerateEnsemble Reason = "degenerate_ensemble"
)

// Verdict is the judgment on one hypothesis.
type Verdict struct {
	Status     Status
	Reason     Reason
	PValue     float64
	Confidence float64
}

// Judge maps a one-sided empirical p-value to a verdict using the
// conventional 0.05 / 0.10 thresholds.
func Judge(pValue float64) Verdict {
	v := Verdict{PValue: pValue, Confidence: 1 - pValue}
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	switch {
	case pValue < 0.05:
		v.Status = StatusSignificant
		v.Reason = ReasonBeyondNulls
	case pValue < 0.10:
		v.Status = StatusMarginal
		v.Reason = ReasonMarginallyExtreme
	default:
		v.Status = StatusConsistent
		v.Reason = ReasonWithinNullScatter
	}
	return v
}

// NullDistributionSummary provides key statistics about a null ensemble for
// reporting; the raw ensemble array stays available for histogramming.
type NullDistributionSummary struct {
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	Percentile5  float64
	Percentile95 float64
	Percentile99 float64
}

// Summarize reduces a null ensemble to its summary statistics. An empty
// ensemble returns the zero summary.
func Summarize(values []float64) NullDistributionSummary {
	if len(values) == 0 {
		return NullDistributionSummary{}
	}
	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	p5, _ := stats.Percentile(values, 5)
	p95, _ := stats.Percentile(values, 95)
	p99, _ := stats.Percentile(values, 99)
	return NullDistributionSummary{
		Mean:         mean,
		StdDev:       sd,
		Min:          min,
		Max:          max,
		Percentile5:  p5,
		Percentile95: p95,
		Percentile99: p99,
	}
}

// FalsificationLog is the audit trail left behind when an anomaly claim does
// not survive its null test.
type FalsificationLog struct {
	Reason           Reason
	ObservedValue    float64
	PValue           float64
	NullDistribution NullDistributionSummary
	SampleCount      int
	FallbackCount    int
	RejectedAt       core.Timestamp
}
