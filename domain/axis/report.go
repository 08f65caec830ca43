package axis

import (
	"skynull/domain/geom"
	"skynull/domain/harmonics"
	"skynull/domain/sphere"
)

// Report collects the quadrupole and octopole axes of a map together with
// their mutual and Solar-System alignment angles, all headless in [0, 90].
type Report struct {
	AxisL2 sphere.Vec3
	AxisL3 sphere.Vec3

	// internal check: quadrupole vs octopole
	Angle23 float64

	// alignment with the ecliptic pole and the vernal equinox
	Angle2Ecliptic float64
	Angle3Ecliptic float64
	Angle2Equinox  float64
	Angle2Solar    float64
	Angle3Solar    float64
}

// Analyze extracts the l=2 and l=3 axes of a map and measures their
// alignment with each other and with the Solar-System reference directions.
func Analyze(f sphere.Field) (*Report, error) {
	nside, err := f.NSide()
	if err != nil {
		return nil, err
	}
	clean, err := harmonics.RemoveLowOrder(f)
	if err != nil {
		return nil, err
	}
	alm, err := harmonics.Forward(clean, 10)
	if err != nil {
		return nil, err
	}

	axisL2, err := Principal(alm, 2, nside)
	if err != nil {
		return nil, err
	}
	axisL3, err := Principal(alm, 3, nside)
	if err != nil {
		return nil, err
	}

	ecl := sphere.EclipticPole()
	sol := sphere.SolarPole()
	return &Report{
		AxisL2:         axisL2,
		AxisL3:         axisL3,
		Angle23:        geom.AngularSeparation(axisL2, axisL3),
		Angle2Ecliptic: geom.AngularSeparation(axisL2, ecl),
		Angle3Ecliptic: geom.AngularSeparation(axisL3, ecl),
		Angle2Equinox:  geom.AngularSeparation(axisL2, sphere.VernalEquinox()),
		Angle2Solar:    geom.AngularSeparation(axisL2, sol),
		Angle3Solar:    geom.AngularSeparation(axisL3, sol),
	}, nil
}
