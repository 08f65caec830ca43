// Package nulls produces the randomized surrogates every hypothesis test is
// ranked against: isotropically rotated copies of a base field, and shuffled
// copies of a catalog.
package nulls

import (
	"math/rand"

	"skynull/domain/sphere"
)

// Generator yields rotated copies of a base field, one uniformly drawn SO(3)
// rotation per draw. The sequence is deterministic per seed and restartable;
// parallel workers each construct their own Generator from a distinct seed so
// their streams stay independent. The base field is read-only shared state.
//
// Rotation is applied by pixel resampling, not coefficient rotation, so
// mask structure survives approximately; invalid values can bleed into
// interpolated pixels at mask boundaries, and callers needing strict masking
// re-apply their mask after rotation.
type Generator struct {
	scheme *sphere.Scheme
	base   sphere.Field
	seed   int64
	rng    *rand.Rand
	next   int
}

// NewGenerator builds a generator over the base field. The field's
// resolution must be valid.
func NewGenerator(base sphere.Field, seed int64) (*Generator, error) {
	nside, err := base.NSide()
	if err != nil {
		return nil, err
	}
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return nil, err
	}
	return &Generator{
		scheme: s,
		base:   base,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed returns the generator's seed.
func (g *Generator) Seed() int64 { return g.seed }

// Next draws the next rotation and returns the sample index plus the rotated
// field.
func (g *Generator) Next() (int, sphere.Field) {
	i := g.next
	g.next++
	rot := sphere.RandomRotation(g.rng)
	return i, rot.RotateField(g.scheme, g.base)
}

// NextRotation draws the next rotation without applying it. Advances the
// same stream as Next.
func (g *Generator) NextRotation() sphere.Rotation {
	g.next++
	return sphere.RandomRotation(g.rng)
}

// Reset rewinds the generator to the start of its seed's sequence.
func (g *Generator) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.next = 0
}
