package sphere

import "math"

// Vec3 is a direction in 3-space. Unit length is assumed by the angular
// helpers; callers construct via the From* constructors or Normalize.
type Vec3 [3]float64

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector along v. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns c*v.
func (v Vec3) Scale(c float64) Vec3 {
	return Vec3{c * v[0], c * v[1], c * v[2]}
}

// Ang returns colatitude theta in [0,pi] and azimuth phi in [0,2pi).
func (v Vec3) Ang() (theta, phi float64) {
	u := v.Normalize()
	z := math.Max(-1, math.Min(1, u[2]))
	theta = math.Acos(z)
	phi = math.Atan2(u[1], u[0])
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return theta, phi
}

// FromAng builds a unit vector from colatitude and azimuth.
func FromAng(theta, phi float64) Vec3 {
	st := math.Sin(theta)
	return Vec3{st * math.Cos(phi), st * math.Sin(phi), math.Cos(theta)}
}

// FromRADec builds a unit vector from equatorial coordinates in degrees.
func FromRADec(raDeg, decDeg float64) Vec3 {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	return Vec3{
		math.Cos(dec) * math.Cos(ra),
		math.Cos(dec) * math.Sin(ra),
		math.Sin(dec),
	}
}

// RADec returns equatorial coordinates in degrees, RA in [0,360).
func (v Vec3) RADec() (raDeg, decDeg float64) {
	theta, phi := v.Ang()
	return phi * 180 / math.Pi, 90 - theta*180/math.Pi
}
