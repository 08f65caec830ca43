// Package geom holds the angular-separation and vector-correlation measures
// used by the alignment hypotheses, plus catalog geometry.
package geom

import (
	"math"

	"skynull/domain/sphere"
)

// AngularSeparation returns the headless angle between two axes in degrees,
// arccos(|v1.v2|), in [0, 90]. An axis extracted from an even power
// distribution has no inherent sign, so v and -v must measure identically.
func AngularSeparation(v1, v2 sphere.Vec3) float64 {
	dot := math.Abs(v1.Normalize().Dot(v2.Normalize()))
	if dot > 1 {
		dot = 1
	}
	return math.Acos(dot) * 180 / math.Pi
}

// GeodesicAngle returns the signed-direction angle between two vectors in
// degrees, in [0, 180]. Used where orientation matters, e.g. distances to
// the north vs south ecliptic pole.
func GeodesicAngle(v1, v2 sphere.Vec3) float64 {
	dot := v1.Normalize().Dot(v2.Normalize())
	dot = math.Max(-1, math.Min(1, dot))
	return math.Acos(dot) * 180 / math.Pi
}

// CorrelateWithAxis measures the alignment of a vector set with a target
// axis: the mean absolute cosine between each vector and the axis. Isotropic
// vectors converge to 0.5, perfect (anti)parallel alignment gives 1.0.
// An empty set yields the isotropic expectation.
func CorrelateWithAxis(vectors []sphere.Vec3, axisVec sphere.Vec3) float64 {
	if len(vectors) == 0 {
		return 0.5
	}
	u := axisVec.Normalize()
	sum := 0.0
	for _, v := range vectors {
		sum += math.Abs(v.Dot(u))
	}
	return sum / float64(len(vectors))
}

// NodalAngles holds geodesic distances from a direction to the Solar-System
// nodes.
type NodalAngles struct {
	NEP     float64 // north ecliptic pole
	SEP     float64 // south ecliptic pole
	Equinox float64 // vernal equinox
}

// NodalAlignment measures a direction against the ecliptic poles and the
// vernal equinox.
func NodalAlignment(v sphere.Vec3) NodalAngles {
	nep := sphere.EclipticPole()
	return NodalAngles{
		NEP:     GeodesicAngle(v, nep),
		SEP:     GeodesicAngle(v, nep.Neg()),
		Equinox: GeodesicAngle(v, sphere.VernalEquinox()),
	}
}
