package sphere

// Reference directions of the Solar-System frame, J2000 epoch, equatorial
// (ICRS) coordinates in degrees.
//
// Solar rotation axis: Archinal et al. 2011 (IAU) / Carrington elements.
const (
	SolarNorthPoleRADeg  = 286.13
	SolarNorthPoleDecDeg = 63.87

	EclipticPoleRADeg  = 270.00
	EclipticPoleDecDeg = 66.56

	GalacticNorthPoleRADeg  = 192.85948
	GalacticNorthPoleDecDeg = 27.12825

	// CMB dipole apex, Planck 2018.
	CMBDipoleRADeg  = 167.942
	CMBDipoleDecDeg = -6.944
)

// SolarPole returns the Sun's north rotation axis as a unit vector.
func SolarPole() Vec3 {
	return FromRADec(SolarNorthPoleRADeg, SolarNorthPoleDecDeg)
}

// EclipticPole returns the north ecliptic pole as a unit vector.
func EclipticPole() Vec3 {
	return FromRADec(EclipticPoleRADeg, EclipticPoleDecDeg)
}

// GalacticPole returns the north galactic pole as a unit vector in the
// equatorial frame.
func GalacticPole() Vec3 {
	return FromRADec(GalacticNorthPoleRADeg, GalacticNorthPoleDecDeg)
}

// CMBDipole returns the CMB dipole apex as a unit vector.
func CMBDipole() Vec3 {
	return FromRADec(CMBDipoleRADeg, CMBDipoleDecDeg)
}

// VernalEquinox returns the zero point of the equatorial frame, the
// intersection of ecliptic and equator.
func VernalEquinox() Vec3 {
	return Vec3{1, 0, 0}
}

// galToEq is the standard J2000 galactic-to-equatorial rotation. Rows are the
// equatorial basis vectors expressed in galactic coordinates transposed, so
// Apply carries galactic-frame vectors into the equatorial frame.
var galToEq = Rotation{
	{-0.0548755604, 0.4941094279, -0.8676661490},
	{-0.8734370902, -0.4448296300, -0.1980763734},
	{-0.4838350155, 0.7469822445, 0.4559837762},
}

// GalacticToEquatorial returns the fixed frame rotation from galactic to
// equatorial (J2000) coordinates.
func GalacticToEquatorial() Rotation {
	return galToEq
}

// EquatorialToGalactic returns the inverse frame rotation.
func EquatorialToGalactic() Rotation {
	return galToEq.Transpose()
}
