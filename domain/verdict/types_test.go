package verdict

import (
	"math"
	"testing"
)

func TestJudgeThresholds(t *testing.T) {
	cases := []struct {
		p      float64
		status Status
		reason Reason
	}{
		{0.0, StatusSignificant, ReasonBeyondNulls},
		{0.049, StatusSignificant, ReasonBeyondNulls},
		{0.05, StatusMarginal, ReasonMarginallyExtreme},
		{0.099, StatusMarginal, ReasonMarginallyExtreme},
		{0.10, StatusConsistent, ReasonWithinNullScatter},
		{0.5, StatusConsistent, ReasonWithinNullScatter},
		{1.0, StatusConsistent, ReasonWithinNullScatter},
	}
	for _, c := range cases {
		v := Judge(c.p)
		if v.Status != c.status {
			t.Errorf("p=%g: status %s, want %s", c.p, v.Status, c.status)
		}
		if v.Reason != c.reason {
			t.Errorf("p=%g: reason %s, want %s", c.p, v.Reason, c.reason)
		}
		if math.Abs(v.Confidence-(1-c.p)) > 1e-12 {
			t.Errorf("p=%g: confidence %g", c.p, v.Confidence)
		}
	}
}

func TestSummarize(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	s := Summarize(values)
	if math.Abs(s.Mean-49.5) > 1e-9 {
		t.Errorf("mean = %g", s.Mean)
	}
	if s.Min != 0 || s.Max != 99 {
		t.Errorf("min/max = %g/%g", s.Min, s.Max)
	}
	if s.Percentile5 > s.Percentile95 || s.Percentile95 > s.Percentile99 {
		t.Error("percentiles out of order")
	}
	if s.StdDev <= 0 {
		t.Errorf("stddev = %g", s.StdDev)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (NullDistributionSummary{}) {
		t.Errorf("empty summary = %+v", s)
	}
}
