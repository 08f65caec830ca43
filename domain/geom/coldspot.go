package geom

import (
	"math"

	"skynull/domain/core"
	"skynull/domain/harmonics"
	"skynull/domain/sphere"
)

// southernCapDeg masks everything above this galactic latitude when hunting
// the cold spot: the Eridanus supervoid sits deep in the southern hemisphere.
const southernCapDeg = -20.0

// ColdSpot is the located temperature minimum of a map.
type ColdSpot struct {
	RADeg  float64
	DecDeg float64
	Vec    sphere.Vec3 // equatorial frame
	Nodal  NodalAngles
}

// FindColdSpot locates the coldest smoothed pixel of a galactic-frame
// temperature map below the southern cap and reports its equatorial
// direction plus nodal alignment angles. Smoothing suppresses point sources;
// pass 0 to search the raw map.
func FindColdSpot(f sphere.Field, smoothFWHMDeg float64) (*ColdSpot, error) {
	nside, err := f.NSide()
	if err != nil {
		return nil, err
	}
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return nil, err
	}

	search := f
	if smoothFWHMDeg > 0 {
		search, err = harmonics.Smooth(f, smoothFWHMDeg)
		if err != nil {
			return nil, err
		}
	}

	minVal := math.Inf(1)
	minPix := -1
	for p := range search {
		if !search.Seen(p) {
			continue
		}
		theta, _ := s.PixToAng(p)
		bDeg := 90 - theta*180/math.Pi
		if bDeg > southernCapDeg {
			continue
		}
		if search[p] < minVal {
			minVal = search[p]
			minPix = p
		}
	}
	if minPix < 0 {
		return nil, core.ErrDegenerateInput
	}

	galVec := s.PixToVec(minPix)
	eqVec := sphere.GalacticToEquatorial().Apply(galVec)
	ra, dec := eqVec.RADec()
	return &ColdSpot{
		RADeg:  ra,
		DecDeg: dec,
		Vec:    eqVec,
		Nodal:  NodalAlignment(eqVec),
	}, nil
}
