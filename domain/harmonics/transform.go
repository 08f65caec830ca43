package harmonics

import (
	"math"
	"math/cmplx"

	"skynull/domain/sphere"
)

// Forward computes the harmonic expansion of a field truncated at lmax,
// using quadrature over the iso-latitude rings: per-ring azimuthal phase
// sums followed by Legendre accumulation across rings. Unseen pixels
// contribute zero. The field length must correspond to a valid resolution.
func Forward(f sphere.Field, lmax int) (*Alm, error) {
	nside, err := f.NSide()
	if err != nil {
		return nil, err
	}
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return nil, err
	}

	alm := NewAlm(lmax)
	omega := s.PixArea()
	phase := make([]complex128, lmax+1)
	lam := make([]float64, lmax+1)

	for i := 1; i <= s.RingCount(); i++ {
		start, count, z, phi0, dphi := s.Ring(i)

		for m := range phase {
			phase[m] = 0
		}
		for j := 0; j < count; j++ {
			if !f.Seen(start + j) {
				continue
			}
			phi := phi0 + float64(j)*dphi
			step := cmplx.Exp(complex(0, -phi))
			cur := complex(f[start+j], 0)
			for m := 0; m <= lmax; m++ {
				phase[m] += cur
				cur *= step
			}
		}

		sx := math.Sqrt(1 - z*z)
		for m := 0; m <= lmax; m++ {
			if phase[m] == 0 {
				continue
			}
			legendreColumn(lmax, m, z, sx, lam)
			w := complex(omega, 0) * phase[m]
			for l := m; l <= lmax; l++ {
				alm.Coef[alm.Index(l, m)] += complex(lam[l-m], 0) * w
			}
		}
	}
	return alm, nil
}

// Inverse reconstructs a field at the given resolution from coefficients.
// Degrees above the coefficient set's own lmax are implicitly zero.
func Inverse(a *Alm, nside int) (sphere.Field, error) {
	s, err := sphere.NewScheme(nside)
	if err != nil {
		return nil, err
	}

	f := sphere.NewField(nside)
	lmax := a.Lmax
	ringG := make([]complex128, lmax+1)
	lam := make([]float64, lmax+1)

	for i := 1; i <= s.RingCount(); i++ {
		start, count, z, phi0, dphi := s.Ring(i)

		sx := math.Sqrt(1 - z*z)
		for m := 0; m <= lmax; m++ {
			legendreColumn(lmax, m, z, sx, lam)
			var g complex128
			for l := m; l <= lmax; l++ {
				g += a.Coef[a.Index(l, m)] * complex(lam[l-m], 0)
			}
			ringG[m] = g
		}

		for j := 0; j < count; j++ {
			phi := phi0 + float64(j)*dphi
			w := cmplx.Exp(complex(0, phi))
			val := real(ringG[0])
			cur := w
			for m := 1; m <= lmax; m++ {
				val += 2 * real(ringG[m]*cur)
				cur *= w
			}
			f[start+j] = val
		}
	}
	return f, nil
}

// PowerSpectrum returns the per-degree angular power Cl for l = 0..lmax,
// Cl = sum_m |a_lm|^2 / (2l+1) with implicit negative m counted.
func PowerSpectrum(f sphere.Field, lmax int) ([]float64, error) {
	alm, err := Forward(f, lmax)
	if err != nil {
		return nil, err
	}
	cl := make([]float64, lmax+1)
	for l := 0; l <= lmax; l++ {
		cl[l] = alm.DegreePower(l) / float64(2*l+1)
	}
	return cl, nil
}

// Smooth convolves the field with a Gaussian beam of the given FWHM in
// degrees, applied in harmonic space up to 2*nside.
func Smooth(f sphere.Field, fwhmDeg float64) (sphere.Field, error) {
	nside, err := f.NSide()
	if err != nil {
		return nil, err
	}
	if fwhmDeg <= 0 {
		return f.Copy(), nil
	}

	lmax := 2 * nside
	alm, err := Forward(f, lmax)
	if err != nil {
		return nil, err
	}

	sigma := fwhmDeg * math.Pi / 180 / 2.3548200450309493
	for l := 0; l <= lmax; l++ {
		beam := math.Exp(-0.5 * float64(l*(l+1)) * sigma * sigma)
		for m := 0; m <= l; m++ {
			alm.Coef[alm.Index(l, m)] *= complex(beam, 0)
		}
	}
	return Inverse(alm, nside)
}
