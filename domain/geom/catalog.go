package geom

import (
	"math"
	"math/rand"

	"skynull/domain/core"
	"skynull/domain/sphere"
)

// Catalog is a point catalog in equatorial coordinates with redshifts.
type Catalog struct {
	RA  []float64 // degrees
	Dec []float64 // degrees
	Z   []float64
}

// Len returns the object count.
func (c *Catalog) Len() int { return len(c.RA) }

// Positions converts the catalog to 3D comoving positions.
func (c *Catalog) Positions() []sphere.Vec3 {
	out := make([]sphere.Vec3, c.Len())
	for i := range out {
		r := ComovingDistance(c.Z[i])
		out[i] = sphere.FromRADec(c.RA[i], c.Dec[i]).Scale(r)
	}
	return out
}

// SeparationVectors computes the normalized pairwise separation vector
// (position_i - position_j, i < j) for every object pair given explicit
// comoving distances in Mpc. Zero-length pairs (duplicates) are dropped.
//
// The construction is O(N^2); inputs above maxObjects fail with a capacity
// error instead of truncating silently or eating unbounded memory. Callers
// wanting a smaller set use Downsample first, which is deterministic for a
// fixed seed.
func SeparationVectors(ra, dec, rComoving []float64, maxObjects int) ([]sphere.Vec3, error) {
	n := len(ra)
	if n > maxObjects {
		return nil, core.NewCapacityError(n, maxObjects)
	}

	pos := make([]sphere.Vec3, n)
	for i := 0; i < n; i++ {
		pos[i] = sphere.FromRADec(ra[i], dec[i]).Scale(rComoving[i])
	}

	vectors := make([]sphere.Vec3, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := pos[i].Sub(pos[j])
			if d.Norm() == 0 {
				continue
			}
			vectors = append(vectors, d.Normalize())
		}
	}
	return vectors, nil
}

// Downsample returns a random subset of size n drawn without replacement,
// deterministic for a fixed seed. Catalogs already within n are returned
// unchanged.
func Downsample(c *Catalog, n int, seed int64) *Catalog {
	if c.Len() <= n {
		return c
	}
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(c.Len())[:n]

	out := &Catalog{
		RA:  make([]float64, n),
		Dec: make([]float64, n),
		Z:   make([]float64, n),
	}
	for k, i := range idx {
		out.RA[k] = c.RA[i]
		out.Dec[k] = c.Dec[i]
		out.Z[k] = c.Z[i]
	}
	return out
}

// Flat LCDM used to turn redshifts into comoving distances.
// H0 in km/s/Mpc, c in km/s.
const (
	hubbleH0     = 70.0
	omegaMatter  = 0.3
	speedOfLight = 299792.458
)

// ComovingDistance integrates the flat-LCDM line-of-sight comoving distance
// to redshift z, in Mpc (Simpson's rule, fixed step).
func ComovingDistance(z float64) float64 {
	if z <= 0 {
		return 0
	}
	eInv := func(zp float64) float64 {
		return 1 / math.Sqrt(omegaMatter*math.Pow(1+zp, 3)+(1-omegaMatter))
	}

	steps := 200
	h := z / float64(steps)
	sum := eInv(0) + eInv(z)
	for i := 1; i < steps; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w * eInv(float64(i)*h)
	}
	return (speedOfLight / hubbleH0) * sum * h / 3
}
