package nulls

import (
	"math/rand"

	"skynull/domain/geom"
)

// SpinCatalog applies one random longitude offset to every object, keeping
// declinations fixed. The latitude distribution (and any survey clumping in
// Dec) survives while longitudinal alignments are destroyed, which is the
// right null for axis-alignment tests.
func SpinCatalog(c *geom.Catalog, seed int64) *geom.Catalog {
	rng := rand.New(rand.NewSource(seed))
	offset := rng.Float64() * 360

	out := &geom.Catalog{
		RA:  make([]float64, c.Len()),
		Dec: append([]float64(nil), c.Dec...),
		Z:   append([]float64(nil), c.Z...),
	}
	for i, ra := range c.RA {
		v := ra + offset
		for v >= 360 {
			v -= 360
		}
		out.RA[i] = v
	}
	return out
}

// ScrambleCatalog randomly reassigns sky positions among the objects,
// breaking any position-redshift coupling while keeping both marginal
// distributions intact.
func ScrambleCatalog(c *geom.Catalog, seed int64) *geom.Catalog {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(c.Len())

	out := &geom.Catalog{
		RA:  make([]float64, c.Len()),
		Dec: make([]float64, c.Len()),
		Z:   append([]float64(nil), c.Z...),
	}
	for i, j := range perm {
		out.RA[i] = c.RA[j]
		out.Dec[i] = c.Dec[j]
	}
	return out
}
