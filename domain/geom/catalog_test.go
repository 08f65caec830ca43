package geom

import (
	"math"
	"testing"

	"skynull/domain/core"
	"skynull/domain/sphere"
)

func TestSeparationVectorsKnownPair(t *testing.T) {
	// Two objects on the same line of sight: their separation vector is the
	// line of sight itself, pointing from the farther toward the nearer for
	// the (i, j) = (near, far) ordering.
	ra := []float64{0, 0}
	dec := []float64{0, 0}
	r := []float64{100, 200}

	vecs, err := SeparationVectors(ra, dec, r, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 1 {
		t.Fatalf("got %d vectors, want 1", len(vecs))
	}
	want := sphere.Vec3{-1, 0, 0}
	if d := vecs[0].Sub(want).Norm(); d > 1e-12 {
		t.Errorf("separation vector %v, want %v", vecs[0], want)
	}
}

func TestSeparationVectorsPairCount(t *testing.T) {
	n := 12
	ra := make([]float64, n)
	dec := make([]float64, n)
	r := make([]float64, n)
	for i := range ra {
		ra[i] = float64(i * 25)
		dec[i] = float64(i*10 - 60)
		r[i] = 100 + float64(i)
	}
	vecs, err := SeparationVectors(ra, dec, r, n)
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != n*(n-1)/2 {
		t.Errorf("got %d vectors, want %d", len(vecs), n*(n-1)/2)
	}
	for _, v := range vecs {
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Fatalf("vector %v not normalized", v)
		}
	}
}

func TestSeparationVectorsDropDuplicates(t *testing.T) {
	ra := []float64{10, 10, 50}
	dec := []float64{5, 5, 0}
	r := []float64{100, 100, 100}
	vecs, err := SeparationVectors(ra, dec, r, 10)
	if err != nil {
		t.Fatal(err)
	}
	// The duplicate pair disappears; two cross pairs remain.
	if len(vecs) != 2 {
		t.Errorf("got %d vectors, want 2", len(vecs))
	}
}

func TestSeparationVectorsCapacity(t *testing.T) {
	n := 11
	ra := make([]float64, n)
	dec := make([]float64, n)
	r := make([]float64, n)
	_, err := SeparationVectors(ra, dec, r, 10)
	if !core.IsCapacityError(err) {
		t.Errorf("want capacity error, got %v", err)
	}
}

func TestDownsampleDeterministic(t *testing.T) {
	c := &Catalog{}
	for i := 0; i < 100; i++ {
		c.RA = append(c.RA, float64(i))
		c.Dec = append(c.Dec, float64(-i))
		c.Z = append(c.Z, 0.01*float64(i))
	}

	a := Downsample(c, 20, 42)
	b := Downsample(c, 20, 42)
	if a.Len() != 20 || b.Len() != 20 {
		t.Fatalf("downsampled sizes %d, %d", a.Len(), b.Len())
	}
	for i := range a.RA {
		if a.RA[i] != b.RA[i] || a.Dec[i] != b.Dec[i] || a.Z[i] != b.Z[i] {
			t.Fatal("same seed should reproduce the same subset")
		}
	}

	// Rows stay intact: each selected object keeps its own coordinates.
	for i := range a.RA {
		if a.Dec[i] != -a.RA[i] {
			t.Fatal("downsample mixed rows")
		}
	}

	small := Downsample(c, 200, 42)
	if small != c {
		t.Error("catalog within the limit should be returned unchanged")
	}
}

func TestComovingDistance(t *testing.T) {
	if d := ComovingDistance(0); d != 0 {
		t.Errorf("distance at z=0 is %g", d)
	}
	if d := ComovingDistance(-1); d != 0 {
		t.Errorf("distance at negative z is %g", d)
	}

	// Monotone in z.
	prev := 0.0
	for _, z := range []float64{0.1, 0.5, 1, 2, 5} {
		d := ComovingDistance(z)
		if d <= prev {
			t.Fatalf("distance not monotone at z=%g: %g <= %g", z, d, prev)
		}
		prev = d
	}

	// Known value for this cosmology: about 3.3 Gpc at z=1.
	if d := ComovingDistance(1); math.Abs(d-3300) > 100 {
		t.Errorf("comoving distance at z=1 is %g Mpc, want ~3300", d)
	}

	// Low-z limit is the Hubble law, d = cz/H0.
	if d := ComovingDistance(0.01); math.Abs(d-0.01*299792.458/70) > 1 {
		t.Errorf("low-z distance %g deviates from Hubble law", d)
	}
}

func TestPositionsScaleWithRedshift(t *testing.T) {
	c := &Catalog{RA: []float64{0, 0}, Dec: []float64{0, 0}, Z: []float64{0.5, 1.0}}
	pos := c.Positions()
	if pos[1].Norm() <= pos[0].Norm() {
		t.Error("higher redshift should sit farther away")
	}
}
