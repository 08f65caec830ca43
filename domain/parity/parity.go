// Package parity quantifies the even/odd multipole power asymmetry of a
// field over a tomographic band [lmin, lmax].
package parity

import (
	"math"

	"skynull/domain/harmonics"
	"skynull/domain/sphere"
)

// Modes splits the band's power into even-degree and odd-degree totals.
// Each degree contributes its total power (m = 0 once, m > 0 twice) weighted
// by l(l+1)/2pi. The band floor is clamped to 2 so monopole and dipole never
// enter, whatever the caller passes.
func Modes(a *harmonics.Alm, lmin, lmax int) (pPlus, pMinus float64) {
	start := lmin
	if start < 2 {
		start = 2
	}
	if lmax > a.Lmax {
		lmax = a.Lmax
	}
	for l := start; l <= lmax; l++ {
		power := float64(l*(l+1)) * a.DegreePower(l) / (2 * math.Pi)
		if l%2 == 0 {
			pPlus += power
		} else {
			pMinus += power
		}
	}
	return pPlus, pMinus
}

// PointParity computes (P+ - P-)/(P+ + P-) over the band, in [-1, +1]:
// +1 purely even, -1 purely odd. Kinematic isolation is applied first,
// unconditionally. A degenerate band with zero total power yields exactly
// 0.0 rather than an error; this happens under some null draws and must not
// abort a long ensemble.
func PointParity(f sphere.Field, lmin, lmax int) (float64, error) {
	clean, err := harmonics.RemoveLowOrder(f)
	if err != nil {
		return 0, err
	}
	alm, err := harmonics.Forward(clean, lmax)
	if err != nil {
		return 0, err
	}
	pPlus, pMinus := Modes(alm, lmin, lmax)
	total := pPlus + pMinus
	if total == 0 {
		return 0.0, nil
	}
	return (pPlus - pMinus) / total, nil
}
