package geom

import (
	"math"
	"math/rand"
	"testing"

	"skynull/domain/sphere"
)

func TestAngularSeparationHeadless(t *testing.T) {
	a := sphere.Vec3{0, 0, 1}
	b := sphere.FromAng(math.Pi/6, 0) // 30 degrees from z

	if sep := AngularSeparation(a, b); math.Abs(sep-30) > 1e-9 {
		t.Errorf("separation = %g, want 30", sep)
	}
	// Sign of either axis is irrelevant.
	if sep := AngularSeparation(a.Neg(), b); math.Abs(sep-30) > 1e-9 {
		t.Errorf("negated separation = %g, want 30", sep)
	}
	// Antiparallel axes are the same axis.
	if sep := AngularSeparation(a, a.Neg()); sep > 1e-6 {
		t.Errorf("antiparallel separation = %g, want 0", sep)
	}
	// Orthogonal axes cap at 90.
	if sep := AngularSeparation(a, sphere.Vec3{1, 0, 0}); math.Abs(sep-90) > 1e-9 {
		t.Errorf("orthogonal separation = %g, want 90", sep)
	}
}

func TestGeodesicAngleSigned(t *testing.T) {
	a := sphere.Vec3{0, 0, 1}
	if g := GeodesicAngle(a, a.Neg()); math.Abs(g-180) > 1e-9 {
		t.Errorf("antiparallel geodesic = %g, want 180", g)
	}
	if g := GeodesicAngle(a, a); g > 1e-9 {
		t.Errorf("self geodesic = %g, want 0", g)
	}
}

func TestCorrelateWithAxis(t *testing.T) {
	axis := sphere.Vec3{0, 0, 1}

	// Perfect alignment, either sign.
	aligned := []sphere.Vec3{{0, 0, 1}, {0, 0, -1}}
	if c := CorrelateWithAxis(aligned, axis); math.Abs(c-1) > 1e-12 {
		t.Errorf("aligned correlation = %g, want 1", c)
	}

	// Orthogonal set.
	ortho := []sphere.Vec3{{1, 0, 0}, {0, 1, 0}}
	if c := CorrelateWithAxis(ortho, axis); c > 1e-12 {
		t.Errorf("orthogonal correlation = %g, want 0", c)
	}

	// Isotropic set converges to 1/2.
	rng := rand.New(rand.NewSource(6))
	iso := make([]sphere.Vec3, 20000)
	for i := range iso {
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		st := math.Sqrt(1 - z*z)
		iso[i] = sphere.Vec3{st * math.Cos(phi), st * math.Sin(phi), z}
	}
	if c := CorrelateWithAxis(iso, axis); math.Abs(c-0.5) > 0.01 {
		t.Errorf("isotropic correlation = %g, want ~0.5", c)
	}

	// Empty set returns the isotropic expectation.
	if c := CorrelateWithAxis(nil, axis); c != 0.5 {
		t.Errorf("empty correlation = %g, want 0.5", c)
	}
}

func TestNodalAlignment(t *testing.T) {
	nep := sphere.EclipticPole()
	n := NodalAlignment(nep)
	if n.NEP > 1e-9 {
		t.Errorf("NEP distance from itself = %g", n.NEP)
	}
	if math.Abs(n.SEP-180) > 1e-9 {
		t.Errorf("SEP distance = %g, want 180", n.SEP)
	}
	// NEP and equinox are 90 degrees apart.
	if math.Abs(n.Equinox-90) > 0.1 {
		t.Errorf("equinox distance = %g, want ~90", n.Equinox)
	}
}
