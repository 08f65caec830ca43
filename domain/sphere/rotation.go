package sphere

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Rotation is a 3x3 orthogonal matrix with determinant +1, an element of
// SO(3), stored row-major.
type Rotation [3][3]float64

// Identity returns the identity rotation.
func Identity() Rotation {
	return Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Apply rotates the vector.
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		r[0][0]*v[0] + r[0][1]*v[1] + r[0][2]*v[2],
		r[1][0]*v[0] + r[1][1]*v[1] + r[1][2]*v[2],
		r[2][0]*v[0] + r[2][1]*v[1] + r[2][2]*v[2],
	}
}

// Transpose returns the inverse rotation.
func (r Rotation) Transpose() Rotation {
	var t Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = r[j][i]
		}
	}
	return t
}

// Compose returns r * other (other applied first).
func (r Rotation) Compose(other Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += r[i][k] * other[k][j]
			}
		}
	}
	return out
}

// Det returns the determinant.
func (r Rotation) Det() float64 {
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

// RandomRotation draws a rotation uniformly with respect to the Haar measure
// on SO(3): QR-factorize a Gaussian matrix, fix column signs against the R
// diagonal so Q is Haar on O(3), then flip one column if the result is a
// reflection. Naive independent-angle sampling biases toward the poles and
// would invalidate every null test built on this.
func RandomRotation(rng *rand.Rand) Rotation {
	a := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a.Set(i, j, rng.NormFloat64())
		}
	}

	var qr mat.QR
	qr.Factorize(a)
	var q, rr mat.Dense
	qr.QTo(&q)
	qr.RTo(&rr)

	var rot Rotation
	for j := 0; j < 3; j++ {
		sign := 1.0
		if rr.At(j, j) < 0 {
			sign = -1.0
		}
		for i := 0; i < 3; i++ {
			rot[i][j] = sign * q.At(i, j)
		}
	}
	if rot.Det() < 0 {
		for i := 0; i < 3; i++ {
			rot[i][0] = -rot[i][0]
		}
	}
	return rot
}

// RotationToPole returns the rotation carrying the direction (theta, phi)
// onto the north pole. Used by directional scans that re-pole a field.
func RotationToPole(theta, phi float64) Rotation {
	cz, sz := math.Cos(-phi), math.Sin(-phi)
	rz := Rotation{{cz, -sz, 0}, {sz, cz, 0}, {0, 0, 1}}
	cy, sy := math.Cos(-theta), math.Sin(-theta)
	ry := Rotation{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}
	return ry.Compose(rz)
}

// RotateField resamples the field under the rotation: the output value at
// pixel direction n is the input interpolated at r^-1(n), so features move
// with r. Interpolation happens in pixel space, preserving any mask/sentinel
// structure approximately; Unseen bleeds into neighboring output pixels at
// mask boundaries.
func (r Rotation) RotateField(s *Scheme, f Field) Field {
	inv := r.Transpose()
	out := make(Field, len(f))
	for p := range out {
		src := inv.Apply(s.PixToVec(p))
		theta, phi := src.Ang()
		out[p] = s.Interpolate(f, theta, phi)
	}
	return out
}
