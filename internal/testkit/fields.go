// Package testkit builds the synthetic sky maps the test suites share.
package testkit

import (
	"math/rand"

	"skynull/domain/harmonics"
	"skynull/domain/sphere"
)

// PureMultipole returns a map whose power sits entirely at one (l, m) mode
// with the given amplitude.
func PureMultipole(nside, lmax, l, m int, amp float64) sphere.Field {
	alm := harmonics.NewAlm(lmax)
	alm.Set(l, m, complex(amp, 0))
	f, err := harmonics.Inverse(alm, nside)
	if err != nil {
		panic(err)
	}
	return f
}

// GaussianField returns a seeded white-noise map.
func GaussianField(nside int, seed int64) sphere.Field {
	rng := rand.New(rand.NewSource(seed))
	f := sphere.NewField(nside)
	for i := range f {
		f[i] = rng.NormFloat64()
	}
	return f
}

// BandLimited returns a smooth random map with unit-variance coefficients at
// every degree from 2 through lmax. White pixel noise carries most of its
// power at degrees the transform truncates; tests about rotation or leakage
// want power the pixelization can actually represent.
func BandLimited(nside, lmax int, seed int64) sphere.Field {
	rng := rand.New(rand.NewSource(seed))
	alm := harmonics.NewAlm(lmax)
	for l := 2; l <= lmax; l++ {
		alm.Set(l, 0, complex(rng.NormFloat64(), 0))
		for m := 1; m <= l; m++ {
			alm.Set(l, m, complex(rng.NormFloat64(), rng.NormFloat64()))
		}
	}
	f, err := harmonics.Inverse(alm, nside)
	if err != nil {
		panic(err)
	}
	return f
}
