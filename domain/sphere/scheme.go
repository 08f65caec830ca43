package sphere

import (
	"math"
	"sync"

	"skynull/domain/core"
)

// Unseen marks unobserved or masked pixels. The value follows the established
// HEALPix convention so masked maps survive round-trips through external tools.
const Unseen = -1.6375e30

// Scheme is a fixed equal-area iso-latitude pixelization of the sphere in
// RING ordering. All fields in a pipeline share one Scheme; the resolution
// parameter nside (a power of two) fixes Npix = 12*nside^2.
type Scheme struct {
	nside int
	npix  int
	ncap  int // pixels in the north polar cap
	rings []ringInfo
}

// ringInfo describes one iso-latitude ring of pixel centers.
type ringInfo struct {
	start int     // index of the first pixel in the ring
	count int     // pixels in the ring
	z     float64 // cos(theta) of the ring
	phi0  float64 // azimuth of the first pixel center
	dphi  float64 // azimuthal spacing within the ring
}

var (
	schemeMu    sync.Mutex
	schemeCache = map[int]*Scheme{}
)

// NewScheme builds (or returns a cached) pixelization for the given nside.
func NewScheme(nside int) (*Scheme, error) {
	if nside < 1 || nside&(nside-1) != 0 {
		return nil, core.NewPixelCountError(12 * nside * nside)
	}
	schemeMu.Lock()
	defer schemeMu.Unlock()
	if s, ok := schemeCache[nside]; ok {
		return s, nil
	}
	s := buildScheme(nside)
	schemeCache[nside] = s
	return s, nil
}

func buildScheme(nside int) *Scheme {
	npix := 12 * nside * nside
	ncap := 2 * nside * (nside - 1)
	nrings := 4*nside - 1
	s := &Scheme{nside: nside, npix: npix, ncap: ncap, rings: make([]ringInfo, nrings)}

	fn := float64(nside)
	for i := 1; i <= nrings; i++ {
		var r ringInfo
		switch {
		case i < nside: // north polar cap
			fi := float64(i)
			r.count = 4 * i
			r.start = 2 * i * (i - 1)
			r.z = 1 - fi*fi/(3*fn*fn)
			r.dphi = math.Pi / (2 * fi)
			r.phi0 = r.dphi / 2
		case i <= 3*nside: // equatorial belt
			r.count = 4 * nside
			r.start = ncap + (i-nside)*4*nside
			r.z = 2 * float64(2*nside-i) / (3 * fn)
			r.dphi = math.Pi / (2 * fn)
			if (i+nside)&1 == 1 {
				r.phi0 = 0
			} else {
				r.phi0 = r.dphi / 2
			}
		default: // south polar cap
			is := 4*nside - i // rings counted from the south pole
			fi := float64(is)
			r.count = 4 * is
			r.start = npix - 2*is*(is+1)
			r.z = -1 + fi*fi/(3*fn*fn)
			r.dphi = math.Pi / (2 * fi)
			r.phi0 = r.dphi / 2
		}
		s.rings[i-1] = r
	}
	return s
}

// NSide returns the resolution parameter.
func (s *Scheme) NSide() int { return s.nside }

// Npix returns the total pixel count.
func (s *Scheme) Npix() int { return s.npix }

// PixArea returns the (equal) solid angle per pixel in steradians.
func (s *Scheme) PixArea() float64 { return 4 * math.Pi / float64(s.npix) }

// RingCount returns the number of iso-latitude rings.
func (s *Scheme) RingCount() int { return len(s.rings) }

// Ring returns the 1-based ring's start pixel, pixel count, z, first-pixel
// azimuth and azimuthal spacing.
func (s *Scheme) Ring(i int) (start, count int, z, phi0, dphi float64) {
	r := s.rings[i-1]
	return r.start, r.count, r.z, r.phi0, r.dphi
}

// PixToAng returns the colatitude and azimuth of a pixel center.
func (s *Scheme) PixToAng(p int) (theta, phi float64) {
	r, j := s.locate(p)
	return math.Acos(r.z), r.phi0 + float64(j)*r.dphi
}

// PixToVec returns the unit direction of a pixel center.
func (s *Scheme) PixToVec(p int) Vec3 {
	r, j := s.locate(p)
	st := math.Sqrt(1 - r.z*r.z)
	phi := r.phi0 + float64(j)*r.dphi
	return Vec3{st * math.Cos(phi), st * math.Sin(phi), r.z}
}

// locate finds the ring containing pixel p and the in-ring offset.
func (s *Scheme) locate(p int) (ringInfo, int) {
	lo, hi := 0, len(s.rings)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.rings[mid].start <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return s.rings[lo], p - s.rings[lo].start
}

// AngToPix returns the pixel whose area contains the direction (theta, phi).
func (s *Scheme) AngToPix(theta, phi float64) int {
	z := math.Cos(theta)
	za := math.Abs(z)
	tt := math.Mod(phi, 2*math.Pi)
	if tt < 0 {
		tt += 2 * math.Pi
	}
	tt /= math.Pi / 2 // in [0,4)

	if za <= 2.0/3.0 { // equatorial belt
		fn := float64(s.nside)
		temp1 := fn * (0.5 + tt)
		temp2 := fn * z * 0.75
		jp := int(math.Floor(temp1 - temp2)) // ascending edge line index
		jm := int(math.Floor(temp1 + temp2)) // descending edge line index

		ir := s.nside + 1 + jp - jm // ring counted from z = 2/3
		kshift := 1 - ir&1
		ip := (jp + jm - s.nside + kshift + 1) / 2
		ip = ((ip % (4 * s.nside)) + 4*s.nside) % (4 * s.nside)
		return s.ncap + (ir-1)*4*s.nside + ip
	}

	// polar caps
	tp := tt - math.Floor(tt)
	tmp := float64(s.nside) * math.Sqrt(3*(1-za))
	jp := int(math.Floor(tp * tmp))
	jm := int(math.Floor((1 - tp) * tmp))

	ir := jp + jm + 1 // ring counted from the closest pole
	ip := int(math.Floor(tt * float64(ir)))
	ip = ((ip % (4 * ir)) + 4*ir) % (4 * ir)
	if z > 0 {
		return 2*ir*(ir-1) + ip
	}
	return s.npix - 2*ir*(ir+1) + ip
}

// VecToPix returns the pixel containing the direction v.
func (s *Scheme) VecToPix(v Vec3) int {
	theta, phi := v.Ang()
	return s.AngToPix(theta, phi)
}

// NSideForPixels infers nside from a pixel count, or fails when the count
// does not correspond to a valid resolution.
func NSideForPixels(npix int) (int, error) {
	if npix <= 0 || npix%12 != 0 {
		return 0, core.NewPixelCountError(npix)
	}
	nside := int(math.Round(math.Sqrt(float64(npix) / 12)))
	if 12*nside*nside != npix || nside&(nside-1) != 0 {
		return 0, core.NewPixelCountError(npix)
	}
	return nside, nil
}
