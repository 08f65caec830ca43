package app

import (
	"context"
	"fmt"

	"skynull/domain/axis"
	"skynull/domain/geom"
	"skynull/domain/nulls"
	"skynull/domain/parity"
	"skynull/domain/sphere"
	"skynull/internal"
	"skynull/internal/config"
	"skynull/ports"
)

// Battery assembles hypothesis descriptors and drives them through the
// estimator. Every experiment shares the same load -> observe -> nulls ->
// p-value control flow; only the descriptor differs.
type Battery struct {
	cfg *config.Config
	log *internal.Logger
}

// NewBattery builds a battery over the pipeline configuration.
func NewBattery(cfg *config.Config) *Battery {
	return &Battery{cfg: cfg, log: internal.DefaultLogger}
}

// Run takes one hypothesis end to end and returns its report.
func (b *Battery) Run(ctx context.Context, hyp ports.Hypothesis) (*Report, error) {
	est, err := NewEstimator(hyp, EstimatorConfig{
		NSims:          b.cfg.NSims,
		Workers:        b.cfg.Workers,
		TasksPerWorker: b.cfg.TasksPerWorker,
		Seed:           b.cfg.Seed,
	})
	if err != nil {
		return nil, err
	}
	if _, err := est.ComputeObserved(); err != nil {
		return nil, err
	}
	if err := est.RunNulls(ctx); err != nil {
		return nil, err
	}
	return est.Report()
}

// ParityHypothesis tests whether the band's even/odd power imbalance is more
// extreme than isotropically rotated copies of the same sky. dir selects the
// tail: DirectionLess probes an odd-parity preference.
func (b *Battery) ParityHypothesis(f sphere.Field, dir ports.Direction) ports.Hypothesis {
	lmin, lmax := b.cfg.LMin, b.cfg.LMax
	return ports.Hypothesis{
		Name:        "point_parity",
		Description: "even/odd multipole power asymmetry vs rotated skies",
		Direction:   dir,
		Observed: func() (float64, error) {
			return parity.PointParity(f, lmin, lmax)
		},
		Null: func(seed int64) (float64, error) {
			gen, err := nulls.NewGenerator(f, seed)
			if err != nil {
				return 0, err
			}
			_, rotated := gen.Next()
			return parity.PointParity(rotated, lmin, lmax)
		},
		Params: map[string]interface{}{
			"lmin": lmin, "lmax": lmax, "direction": dir.String(),
		},
	}
}

// AxisAlignmentHypothesis tests whether one multipole's principal axis sits
// closer to a reference direction than rotation nulls allow. Smaller angles
// are more aligned, so the extreme tail is DirectionLess.
func (b *Battery) AxisAlignmentHypothesis(f sphere.Field, l int, refName string, ref sphere.Vec3) ports.Hypothesis {
	return ports.Hypothesis{
		Name:        fmt.Sprintf("axis_alignment_l%d_%s", l, refName),
		Description: "multipole principal axis separation from " + refName,
		Direction:   ports.DirectionLess,
		Observed: func() (float64, error) {
			ax, err := axis.FromField(f, l)
			if err != nil {
				return 0, err
			}
			return geom.AngularSeparation(ax, ref), nil
		},
		Null: func(seed int64) (float64, error) {
			gen, err := nulls.NewGenerator(f, seed)
			if err != nil {
				return 0, err
			}
			_, rotated := gen.Next()
			ax, err := axis.FromField(rotated, l)
			if err != nil {
				return 0, err
			}
			return geom.AngularSeparation(ax, ref), nil
		},
		Params: map[string]interface{}{
			"l": l, "reference": refName,
		},
	}
}

// MutualAxisHypothesis tests the internal quadrupole-octopole alignment: the
// headless angle between the l=2 and l=3 principal axes against rotation
// nulls. Rotating the whole sky rigidly preserves this angle, so the null
// rotates the two multipoles independently via two draws from the sample's
// stream.
func (b *Battery) MutualAxisHypothesis(f sphere.Field) ports.Hypothesis {
	return ports.Hypothesis{
		Name:        "quadrupole_octopole_alignment",
		Description: "mutual angle between l=2 and l=3 principal axes",
		Direction:   ports.DirectionLess,
		Observed: func() (float64, error) {
			rep, err := axis.Analyze(f)
			if err != nil {
				return 0, err
			}
			return rep.Angle23, nil
		},
		Null: func(seed int64) (float64, error) {
			gen, err := nulls.NewGenerator(f, seed)
			if err != nil {
				return 0, err
			}
			_, first := gen.Next()
			_, second := gen.Next()
			ax2, err := axis.FromField(first, 2)
			if err != nil {
				return 0, err
			}
			ax3, err := axis.FromField(second, 3)
			if err != nil {
				return 0, err
			}
			return geom.AngularSeparation(ax2, ax3), nil
		},
		Params: map[string]interface{}{"l_pair": "2,3"},
	}
}

// CatalogAlignmentHypothesis tests whether the catalog's pairwise separation
// vectors correlate with a target axis beyond what longitude-spun copies of
// the catalog produce. Larger correlation is more aligned.
func (b *Battery) CatalogAlignmentHypothesis(cat *geom.Catalog, axisName string, axisVec sphere.Vec3) ports.Hypothesis {
	maxObjects := b.cfg.MaxCatalogObjects
	statistic := func(c *geom.Catalog) (float64, error) {
		r := make([]float64, c.Len())
		for i, z := range c.Z {
			r[i] = geom.ComovingDistance(z)
		}
		vecs, err := geom.SeparationVectors(c.RA, c.Dec, r, maxObjects)
		if err != nil {
			return 0, err
		}
		return geom.CorrelateWithAxis(vecs, axisVec), nil
	}
	return ports.Hypothesis{
		Name:        "catalog_alignment_" + axisName,
		Description: "pairwise separation-vector correlation with " + axisName,
		Direction:   ports.DirectionGreater,
		Observed: func() (float64, error) {
			return statistic(cat)
		},
		Null: func(seed int64) (float64, error) {
			return statistic(nulls.SpinCatalog(cat, seed))
		},
		Params: map[string]interface{}{
			"axis": axisName, "objects": cat.Len(),
		},
	}
}
