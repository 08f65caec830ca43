// Package axis reduces one multipole's angular power distribution to a
// single preferred direction.
package axis

import (
	"gonum.org/v1/gonum/mat"

	"skynull/domain/harmonics"
	"skynull/domain/sphere"
)

// degenerateWeight is the total power below which the moment tensor is
// treated as degenerate and an arbitrary axis returned.
const degenerateWeight = 1e-30

// Principal returns the axis characterizing the power distribution of one
// multipole: the field is reconstructed with only degree-l content, every
// pixel weighted by its squared value, and the weighted second-moment tensor
// C = sum w * (n outer n) eigendecomposed. The eigenvector of the smallest
// eigenvalue is the normal of the power distribution's plane.
//
// The result is headless: v and -v name the same axis, and no sign
// canonicalization is performed. Callers combining two axes must align signs
// themselves via the dot product. A zero-power multipole leaves C degenerate;
// the returned axis is then arbitrary but the call still succeeds.
func Principal(a *harmonics.Alm, l, nside int) (sphere.Vec3, error) {
	filtered := a.FilterDegree(l)
	f, err := harmonics.Inverse(filtered, nside)
	if err != nil {
		return sphere.Vec3{}, err
	}
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return sphere.Vec3{}, err
	}

	var c [9]float64
	var total float64
	for p := range f {
		w := f[p] * f[p]
		if w == 0 {
			continue
		}
		v := s.PixToVec(p)
		total += w
		c[0] += w * v[0] * v[0]
		c[1] += w * v[0] * v[1]
		c[2] += w * v[0] * v[2]
		c[4] += w * v[1] * v[1]
		c[5] += w * v[1] * v[2]
		c[8] += w * v[2] * v[2]
	}
	c[3], c[6], c[7] = c[1], c[2], c[5]

	if total < degenerateWeight {
		// nothing to orient; arbitrary axis, documented limitation
		return sphere.Vec3{0, 0, 1}, nil
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(3, c[:]), true); !ok {
		return sphere.Vec3{0, 0, 1}, nil
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// eigenvalues come out ascending; column 0 is the pancake normal
	axis := sphere.Vec3{vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)}
	return axis.Normalize(), nil
}

// FromField is Principal applied to a raw field: kinematic isolation, then a
// forward transform tight enough for the low multipoles of interest.
func FromField(f sphere.Field, l int) (sphere.Vec3, error) {
	nside, err := f.NSide()
	if err != nil {
		return sphere.Vec3{}, err
	}
	clean, err := harmonics.RemoveLowOrder(f)
	if err != nil {
		return sphere.Vec3{}, err
	}
	lmax := l + 4
	if lmax < 10 {
		lmax = 10
	}
	alm, err := harmonics.Forward(clean, lmax)
	if err != nil {
		return sphere.Vec3{}, err
	}
	return Principal(alm, l, nside)
}
