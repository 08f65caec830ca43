package sphere

import "math"

// Interpolate samples the field at an arbitrary direction by bilinear
// interpolation: linear in azimuth along the two rings bracketing the
// colatitude, then linear in z between them. Directions poleward of the first
// or last ring fall back to pure azimuthal interpolation on that ring.
// Any Unseen contributor makes the result Unseen; masks bleed by up to one
// pixel under resampling, which callers re-mask if they need hard edges.
func (s *Scheme) Interpolate(f Field, theta, phi float64) float64 {
	z := math.Cos(theta)

	first := s.rings[0]
	last := s.rings[len(s.rings)-1]
	if z >= first.z {
		return s.ringLerp(f, first, phi)
	}
	if z <= last.z {
		return s.ringLerp(f, last, phi)
	}

	// rings are ordered by strictly decreasing z
	lo, hi := 0, len(s.rings)-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if s.rings[mid].z >= z {
			lo = mid
		} else {
			hi = mid
		}
	}
	rn, rs := s.rings[lo], s.rings[hi]

	vn := s.ringLerp(f, rn, phi)
	vs := s.ringLerp(f, rs, phi)
	if vn == Unseen || vs == Unseen {
		return Unseen
	}
	t := (rn.z - z) / (rn.z - rs.z)
	return (1-t)*vn + t*vs
}

// ringLerp interpolates linearly in azimuth between the two adjacent pixel
// centers of one ring.
func (s *Scheme) ringLerp(f Field, r ringInfo, phi float64) float64 {
	x := (phi - r.phi0) / r.dphi
	x = math.Mod(x, float64(r.count))
	if x < 0 {
		x += float64(r.count)
	}
	j0 := int(math.Floor(x))
	if j0 >= r.count {
		j0 = 0
	}
	j1 := (j0 + 1) % r.count
	w := x - math.Floor(x)

	v0, v1 := f[r.start+j0], f[r.start+j1]
	if !f.Seen(r.start+j0) || !f.Seen(r.start+j1) {
		return Unseen
	}
	return (1-w)*v0 + w*v1
}
