package parity_test

import (
	"context"
	"math"
	"testing"

	"skynull/domain/harmonics"
	"skynull/domain/parity"
	"skynull/domain/sphere"
	"skynull/internal/testkit"
)

func TestModesWeighting(t *testing.T) {
	a := harmonics.NewAlm(5)
	a.Set(2, 0, 1) // power 1 at even l=2
	a.Set(3, 0, 1) // power 1 at odd l=3

	pPlus, pMinus := parity.Modes(a, 2, 5)
	wantPlus := 6.0 / (2 * math.Pi)   // l(l+1) = 6
	wantMinus := 12.0 / (2 * math.Pi) // l(l+1) = 12
	if math.Abs(pPlus-wantPlus) > 1e-12 {
		t.Errorf("even power = %g, want %g", pPlus, wantPlus)
	}
	if math.Abs(pMinus-wantMinus) > 1e-12 {
		t.Errorf("odd power = %g, want %g", pMinus, wantMinus)
	}
}

func TestModesClampsBandFloor(t *testing.T) {
	a := harmonics.NewAlm(4)
	a.Set(0, 0, 10) // monopole
	a.Set(1, 0, 10) // dipole
	a.Set(2, 0, 1)

	pPlus, pMinus := parity.Modes(a, 0, 4)
	if pMinus != 0 {
		t.Errorf("odd power = %g, dipole should be excluded", pMinus)
	}
	want := 6.0 / (2 * math.Pi)
	if math.Abs(pPlus-want) > 1e-12 {
		t.Errorf("even power = %g, monopole should be excluded", pPlus)
	}
}

func TestPointParityPureEven(t *testing.T) {
	f := testkit.PureMultipole(32, 8, 4, 2, 1)
	got, err := parity.PointParity(f, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1) > 1e-3 {
		t.Errorf("pure even map parity = %g, want +1", got)
	}
}

func TestPointParityPureOdd(t *testing.T) {
	f := testkit.PureMultipole(32, 8, 3, 1, 1)
	got, err := parity.PointParity(f, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got+1) > 1e-3 {
		t.Errorf("pure odd map parity = %g, want -1", got)
	}
}

func TestPointParityMixed(t *testing.T) {
	even := testkit.PureMultipole(32, 8, 2, 1, 1)
	odd := testkit.PureMultipole(32, 8, 3, 1, 1)
	mixed := even.Copy()
	for i := range mixed {
		mixed[i] += odd[i]
	}
	got, err := parity.PointParity(mixed, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got <= -0.99 || got >= 0.99 {
		t.Errorf("mixed map parity = %g, want interior value", got)
	}
}

func TestPointParityZeroBand(t *testing.T) {
	f := sphere.NewField(16)
	got, err := parity.PointParity(f, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.0 {
		t.Errorf("empty band parity = %g, want exactly 0", got)
	}
}

func TestPointParityKinematicIsolation(t *testing.T) {
	// A dipole a hundred times stronger than the signal must not move the
	// statistic: it is removed before the band is formed.
	signal := testkit.PureMultipole(32, 8, 4, 1, 1)
	base, err := parity.PointParity(signal, 2, 8)
	if err != nil {
		t.Fatal(err)
	}

	s, err := sphere.NewScheme(32)
	if err != nil {
		t.Fatal(err)
	}
	contaminated := signal.Copy()
	for p := range contaminated {
		contaminated[p] += 100 * s.PixToVec(p)[2]
	}
	got, err := parity.PointParity(contaminated, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-base) > 1e-3 {
		t.Errorf("parity moved from %g to %g under dipole contamination", base, got)
	}
}

func TestScanGridValues(t *testing.T) {
	f := testkit.PureMultipole(16, 6, 2, 0, 1)

	out, err := parity.Scan(context.Background(), f, 2, 2, 6, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 12*2*2 {
		t.Fatalf("scan output length %d, want %d", len(out), 12*2*2)
	}
	// An even map stays even whichever direction is re-poled to.
	for p, v := range out {
		if math.Abs(v-1) > 5e-3 {
			t.Errorf("direction %d: parity %g, want ~+1", p, v)
		}
	}
}

func TestScanSequentialMatchesParallel(t *testing.T) {
	f := testkit.BandLimited(16, 6, 9)

	seq, err := parity.Scan(context.Background(), f, 1, 2, 6, 1)
	if err != nil {
		t.Fatal(err)
	}
	par, err := parity.Scan(context.Background(), f, 1, 2, 6, 4)
	if err != nil {
		t.Fatal(err)
	}
	for p := range seq {
		if math.Abs(seq[p]-par[p]) > 1e-12 {
			t.Fatalf("direction %d: sequential %g vs parallel %g", p, seq[p], par[p])
		}
	}
}

func TestScanCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := testkit.BandLimited(16, 6, 9)
	if _, err := parity.Scan(ctx, f, 2, 2, 6, 2); err == nil {
		t.Error("cancelled scan should fail")
	}
}
