package ports

// Direction states which tail of the null distribution counts as extreme.
// The estimator never infers it: smaller-is-significant and
// larger-is-significant hypotheses look identical from the numbers alone.
type Direction int

const (
	// DirectionGreater: null samples >= observed count as more extreme.
	DirectionGreater Direction = iota
	// DirectionLess: null samples <= observed count as more extreme.
	DirectionLess
)

func (d Direction) String() string {
	if d == DirectionLess {
		return "less"
	}
	return "greater"
}

// Hypothesis is one declarative experiment: how to compute the observed
// statistic, how to draw one independent null sample, and which direction is
// extreme. Everything a worker needs arrives through these closures at
// construction time; no ambient state.
type Hypothesis struct {
	Name        string
	Description string
	Direction   Direction

	// Observed computes the statistic on the real data, once.
	Observed func() (float64, error)

	// Null evaluates the same statistic on one fresh surrogate. Each call
	// receives a distinct seed and must be independent of every other call;
	// identical seeds must reproduce identical samples.
	Null func(seed int64) (float64, error)

	// Params feeds the test-configuration fingerprint that guards against
	// ensemble reuse across differing test parameters.
	Params map[string]interface{}
}
