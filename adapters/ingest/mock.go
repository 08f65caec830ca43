package ingest

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"skynull/domain/harmonics"
	"skynull/domain/sphere"
)

// MockOptions shapes a synthetic sky for pipeline rehearsal.
type MockOptions struct {
	NSide     int
	Seed      int64
	NoiseAmp  float64 // per-pixel Gaussian sigma
	SignalAmp float64 // amplitude of the injected octopole, 0 for pure noise
}

// MockField builds a Gaussian noise sky, optionally with a sectoral octopole
// injected whose plane normal sits at the solar apex, so axis extraction has
// a known target. Zonal modes would leave the principal axis degenerate.
func MockField(opts MockOptions) (sphere.Field, error) {
	scheme, err := sphere.NewScheme(opts.NSide)
	if err != nil {
		return nil, err
	}
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(uint64(opts.Seed))}

	f := sphere.NewField(opts.NSide)
	for i := range f {
		f[i] = opts.NoiseAmp * noise.Rand()
	}
	if opts.SignalAmp == 0 {
		return f, nil
	}

	a := harmonics.NewAlm(3)
	a.Set(3, 3, complex(opts.SignalAmp, 0))
	signal, err := harmonics.Inverse(a, opts.NSide)
	if err != nil {
		return nil, err
	}
	theta, phi := sphere.SolarPole().Ang()
	rot := sphere.RotationToPole(theta, phi).Transpose()
	signal = rot.RotateField(scheme, signal)
	for i := range f {
		f[i] += signal[i]
	}
	return f, nil
}
