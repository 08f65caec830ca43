package harmonics

import "math"

// legendreColumn fills out[k] = lambda_{m+k,m}(x) for k = 0..lmax-m, where
// lambda_lm is the fully normalized associated Legendre function, i.e.
// Y_lm(theta,phi) = lambda_lm(cos theta) * exp(i m phi), Condon-Shortley
// phase included. sx = sin(theta) >= 0. The recurrence is the standard
// stable three-term form in l at fixed m.
func legendreColumn(lmax, m int, x, sx float64, out []float64) {
	pmm := 1.0 / math.Sqrt(4*math.Pi)
	for k := 1; k <= m; k++ {
		pmm *= -math.Sqrt(float64(2*k+1)/float64(2*k)) * sx
	}
	out[0] = pmm
	if lmax == m {
		return
	}

	pm1 := x * math.Sqrt(float64(2*m+3)) * pmm
	out[1] = pm1

	p2, p1 := pmm, pm1
	for l := m + 2; l <= lmax; l++ {
		fl, fm := float64(l), float64(m)
		al := math.Sqrt((4*fl*fl - 1) / (fl*fl - fm*fm))
		bl := math.Sqrt(((fl-1)*(fl-1) - fm*fm) / (4*(fl-1)*(fl-1) - 1))
		p := al * (x*p1 - bl*p2)
		out[l-m] = p
		p2, p1 = p1, p
	}
}
