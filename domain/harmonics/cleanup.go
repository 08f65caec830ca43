package harmonics

import (
	"gonum.org/v1/gonum/mat"

	"skynull/domain/sphere"
)

// RemoveLowOrder subtracts the best-fit monopole and dipole from a field: the
// kinematic isolation step that strips the observer-motion dipole before any
// higher-multipole statistic. The fit is a least-squares solve over the basis
// {1, x, y, z} restricted to observed pixels; Unseen pixels stay Unseen.
func RemoveLowOrder(f sphere.Field) (sphere.Field, error) {
	nside, err := f.NSide()
	if err != nil {
		return nil, err
	}
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return nil, err
	}

	// normal equations A'A w = A'b over the four basis functions
	var ata [16]float64
	var atb [4]float64
	basis := [4]float64{1, 0, 0, 0}
	for p := range f {
		if !f.Seen(p) {
			continue
		}
		v := s.PixToVec(p)
		basis[1], basis[2], basis[3] = v[0], v[1], v[2]
		for i := 0; i < 4; i++ {
			for j := i; j < 4; j++ {
				ata[i*4+j] += basis[i] * basis[j]
			}
			atb[i] += basis[i] * f[p]
		}
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < i; j++ {
			ata[i*4+j] = ata[j*4+i]
		}
	}

	sym := mat.NewSymDense(4, ata[:])
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		// near-empty or pathological sky coverage; fall back to the mean
		out := f.Copy()
		mean := f.Mean()
		for p := range out {
			if out.Seen(p) {
				out[p] -= mean
			}
		}
		return out, nil
	}

	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, mat.NewVecDense(4, atb[:])); err != nil {
		return nil, err
	}

	out := f.Copy()
	for p := range out {
		if !out.Seen(p) {
			continue
		}
		v := s.PixToVec(p)
		out[p] -= sol.AtVec(0) + sol.AtVec(1)*v[0] + sol.AtVec(2)*v[1] + sol.AtVec(3)*v[2]
	}
	return out, nil
}
