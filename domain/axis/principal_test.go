package axis_test

import (
	"math"
	"testing"

	"skynull/domain/axis"
	"skynull/domain/geom"
	"skynull/domain/harmonics"
	"skynull/domain/sphere"
	"skynull/internal/testkit"
)

// A Y_22 map concentrates its power in an equatorial band, so the band's
// plane normal, the z axis, is the unique principal axis.
func TestPrincipalEquatorialBand(t *testing.T) {
	a := harmonics.NewAlm(4)
	a.Set(2, 2, 1)

	got, err := axis.Principal(a, 2, 32)
	if err != nil {
		t.Fatal(err)
	}
	if align := math.Abs(got.Dot(sphere.Vec3{0, 0, 1})); align < 0.999 {
		t.Errorf("axis %v, want +/- z (|dot| = %g)", got, align)
	}
}

func TestPrincipalFollowsRotation(t *testing.T) {
	const nside = 32
	f := testkit.PureMultipole(nside, 4, 2, 2, 1)

	base, err := axis.FromField(f, 2)
	if err != nil {
		t.Fatal(err)
	}

	s, err := sphere.NewScheme(nside)
	if err != nil {
		t.Fatal(err)
	}
	// Carry the pole to a direction 60 degrees away.
	target := sphere.FromAng(math.Pi/3, 1.0)
	theta, phi := target.Ang()
	rot := sphere.RotationToPole(theta, phi).Transpose()
	rotatedAxis, err := axis.FromField(rot.RotateField(s, f), 2)
	if err != nil {
		t.Fatal(err)
	}

	want := rot.Apply(base)
	if sep := geom.AngularSeparation(rotatedAxis, want); sep > 2 {
		t.Errorf("rotated axis separated from expectation by %g deg", sep)
	}
	// And the rotation genuinely moved the axis.
	if sep := geom.AngularSeparation(rotatedAxis, base); sep < 5 {
		t.Errorf("rotation barely moved the axis (%g deg)", sep)
	}
}

func TestPrincipalDegenerateInput(t *testing.T) {
	a := harmonics.NewAlm(4) // no power at all
	got, err := axis.Principal(a, 2, 16)
	if err != nil {
		t.Fatalf("degenerate input must not fail: %v", err)
	}
	if n := got.Norm(); math.Abs(n-1) > 1e-12 {
		t.Errorf("degenerate axis norm = %g, want unit", n)
	}
}

func TestAnalyzeReportRanges(t *testing.T) {
	f := testkit.BandLimited(32, 10, 77)
	rep, err := axis.Analyze(f)
	if err != nil {
		t.Fatal(err)
	}

	for name, angle := range map[string]float64{
		"Angle23":        rep.Angle23,
		"Angle2Ecliptic": rep.Angle2Ecliptic,
		"Angle3Ecliptic": rep.Angle3Ecliptic,
		"Angle2Equinox":  rep.Angle2Equinox,
		"Angle2Solar":    rep.Angle2Solar,
		"Angle3Solar":    rep.Angle3Solar,
	} {
		if angle < 0 || angle > 90 {
			t.Errorf("%s = %g outside headless range [0, 90]", name, angle)
		}
	}
	for _, v := range []sphere.Vec3{rep.AxisL2, rep.AxisL3} {
		if n := v.Norm(); math.Abs(n-1) > 1e-9 {
			t.Errorf("axis norm = %g", n)
		}
	}
}

func TestAnalyzeAlignedConstruction(t *testing.T) {
	// Build a map whose l=2 band plane is equatorial; its axis must then sit
	// near the poles and Angle2Ecliptic near the ecliptic pole's distance
	// from z. More simply: a z-normal quadrupole rotated onto the ecliptic
	// pole yields a small Angle2Ecliptic.
	const nside = 32
	f := testkit.PureMultipole(nside, 4, 2, 2, 1)
	s, err := sphere.NewScheme(nside)
	if err != nil {
		t.Fatal(err)
	}
	theta, phi := sphere.EclipticPole().Ang()
	rot := sphere.RotationToPole(theta, phi).Transpose()
	rep, err := axis.Analyze(rot.RotateField(s, f))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Angle2Ecliptic > 3 {
		t.Errorf("constructed ecliptic alignment off by %g deg", rep.Angle2Ecliptic)
	}
}
