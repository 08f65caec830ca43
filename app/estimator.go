package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"skynull/domain/core"
	"skynull/domain/verdict"
	"skynull/internal"
	"skynull/ports"
)

// EstimatorState names the phases of one significance test.
type EstimatorState string

const (
	StateConfigured    EstimatorState = "CONFIGURED"
	StateRealComputed  EstimatorState = "REAL_COMPUTED"
	StateNullsRunning  EstimatorState = "NULLS_RUNNING"
	StateNullsComplete EstimatorState = "NULLS_COMPLETE"
	StateReported      EstimatorState = "REPORTED"
)

// EstimatorConfig tunes one estimator run.
type EstimatorConfig struct {
	NSims          int
	Workers        int
	TasksPerWorker int
	Seed           int64

	// FallbackValue replaces a null sample whose evaluation panicked or
	// errored; each substitution is counted, never fatal.
	FallbackValue float64
}

// Estimator drives one hypothesis through its Monte Carlo significance test:
// observed statistic once, N independent null samples through a bounded
// worker pool, then a one-sided empirical p-value. Instances are single-use;
// a fresh ensemble is built for every hypothesis and discarded with it, so
// no ensemble ever serves two differently-parameterized tests.
type Estimator struct {
	runID core.RunID
	hyp   ports.Hypothesis
	cfg   EstimatorConfig
	hash  core.TestConfigHash
	log   *internal.Logger

	mu        sync.Mutex
	state     EstimatorState
	observed  float64
	nulls     []float64
	fallbacks int
}

// Report is the terminal output of one estimator run. Nulls carries the full
// ensemble for histogram plotting; plotting itself happens elsewhere.
type Report struct {
	RunID      core.RunID
	Hypothesis string
	ConfigHash core.TestConfigHash

	Observed  float64
	Direction ports.Direction
	PValue    float64
	Verdict   verdict.Verdict

	Nulls         []float64
	NullSummary   verdict.NullDistributionSummary
	SampleCount   int
	FallbackCount int

	Falsification *verdict.FalsificationLog
	CompletedAt   core.Timestamp
}

// NewEstimator configures a single-use estimator for one hypothesis.
func NewEstimator(hyp ports.Hypothesis, cfg EstimatorConfig) (*Estimator, error) {
	if hyp.Observed == nil || hyp.Null == nil {
		return nil, fmt.Errorf("hypothesis %q missing statistic functions", hyp.Name)
	}
	if cfg.NSims < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", cfg.NSims)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.TasksPerWorker < 1 {
		cfg.TasksPerWorker = 16
	}
	return &Estimator{
		runID: core.RunID(core.NewID()),
		hyp:   hyp,
		cfg:   cfg,
		hash:  core.ComputeTestConfigHash(hyp.Name, cfg.NSims, hyp.Params),
		log:   internal.DefaultLogger,
		state: StateConfigured,
	}, nil
}

// RunID identifies this estimator run.
func (e *Estimator) RunID() core.RunID { return e.runID }

// State returns the current phase.
func (e *Estimator) State() EstimatorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ComputeObserved evaluates the statistic on the real data, once.
func (e *Estimator) ComputeObserved() (float64, error) {
	e.mu.Lock()
	if e.state != StateConfigured {
		from := e.state
		e.mu.Unlock()
		return 0, core.NewStateError(string(from), string(StateRealComputed))
	}
	e.mu.Unlock()

	v, err := e.hyp.Observed()
	if err != nil {
		return 0, fmt.Errorf("observed statistic for %q: %w", e.hyp.Name, err)
	}

	e.mu.Lock()
	e.observed = v
	e.state = StateRealComputed
	e.mu.Unlock()
	e.log.Info("hypothesis %q observed statistic: %.6g", e.hyp.Name, v)
	return v, nil
}

// RunNulls evaluates the statistic on NSims independent surrogates. Workers
// are recycled after TasksPerWorker samples; the transform and resampling
// working sets are large, and a worker that never retires accumulates them
// across thousands of draws. Sample i always uses seed base+i, so the
// ensemble is reproducible whatever the scheduling order, and every sample's
// stream is distinct from every other's. On cancellation the estimator stays
// non-reportable.
func (e *Estimator) RunNulls(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateRealComputed {
		from := e.state
		e.mu.Unlock()
		return core.NewStateError(string(from), string(StateNullsRunning))
	}
	e.state = StateNullsRunning
	e.mu.Unlock()

	n := e.cfg.NSims
	results := make([]float64, n)
	var completed, fallbacks atomic.Int64

	sem := semaphore.NewWeighted(int64(e.cfg.Workers))
	var wg sync.WaitGroup
	for start := 0; start < n; start += e.cfg.TasksPerWorker {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		end := start + e.cfg.TasksPerWorker
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer sem.Release(1)
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				v, usedFallback := e.evalNull(e.cfg.Seed + int64(i))
				results[i] = v
				if usedFallback {
					fallbacks.Add(1)
				}
				completed.Add(1)
			}
		}(start, end)
	}
	wg.Wait()

	if int(completed.Load()) < n {
		e.log.Warn("hypothesis %q ensemble aborted at %d/%d samples", e.hyp.Name, completed.Load(), n)
		if err := ctx.Err(); err != nil {
			return err
		}
		return core.ErrIncompleteEnsemble
	}

	e.mu.Lock()
	e.nulls = results
	e.fallbacks = int(fallbacks.Load())
	e.state = StateNullsComplete
	e.mu.Unlock()
	if fb := fallbacks.Load(); fb > 0 {
		e.log.Warn("hypothesis %q: %d null samples replaced by fallback value %.3g", e.hyp.Name, fb, e.cfg.FallbackValue)
	}
	return nil
}

// evalNull computes one null sample. Panics and errors never escape: they
// become the fallback value, shrinking the effective ensemble by one.
func (e *Estimator) evalNull(seed int64) (value float64, usedFallback bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("null sample seed %d panicked: %v", seed, r)
			value, usedFallback = e.cfg.FallbackValue, true
		}
	}()
	v, err := e.hyp.Null(seed)
	if err != nil {
		e.log.Debug("null sample seed %d failed: %v", seed, err)
		return e.cfg.FallbackValue, true
	}
	return v, false
}

// Report ranks the observed statistic against the completed ensemble and
// retires the estimator. One-sided p-value: the fraction of null samples at
// least as extreme as the observed value in the hypothesis's direction.
func (e *Estimator) Report() (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateReported:
		return nil, core.ErrEstimatorSpent
	case StateNullsComplete:
		// proceed
	case StateNullsRunning:
		return nil, core.ErrIncompleteEnsemble
	default:
		return nil, core.NewStateError(string(e.state), string(StateReported))
	}

	extreme := 0
	for _, v := range e.nulls {
		if e.hyp.Direction == ports.DirectionGreater && v >= e.observed {
			extreme++
		}
		if e.hyp.Direction == ports.DirectionLess && v <= e.observed {
			extreme++
		}
	}
	p := float64(extreme) / float64(len(e.nulls))
	vd := verdict.Judge(p)

	rep := &Report{
		RunID:         e.runID,
		Hypothesis:    e.hyp.Name,
		ConfigHash:    e.hash,
		Observed:      e.observed,
		Direction:     e.hyp.Direction,
		PValue:        p,
		Verdict:       vd,
		Nulls:         e.nulls,
		NullSummary:   verdict.Summarize(e.nulls),
		SampleCount:   len(e.nulls),
		FallbackCount: e.fallbacks,
		CompletedAt:   core.Now(),
	}
	if vd.Status == verdict.StatusConsistent {
		rep.Falsification = &verdict.FalsificationLog{
			Reason:           vd.Reason,
			ObservedValue:    e.observed,
			PValue:           p,
			NullDistribution: rep.NullSummary,
			SampleCount:      len(e.nulls),
			FallbackCount:    e.fallbacks,
			RejectedAt:       rep.CompletedAt,
		}
	}

	e.state = StateReported
	return rep, nil
}
