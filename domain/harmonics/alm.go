package harmonics

// Alm is a set of spherical-harmonic coefficients for a real field, holding
// only m >= 0 (negative m is implied by conjugate symmetry). Coefficients are
// flattened m-major: index(l,m) = m*(2*lmax+1-m)/2 + l, a pure function of
// lmax, so (l,m) lookups never search.
type Alm struct {
	Lmax int
	Coef []complex128
}

// Size returns the coefficient count for a given lmax.
func Size(lmax int) int {
	return (lmax + 1) * (lmax + 2) / 2
}

// NewAlm allocates a zero coefficient set.
func NewAlm(lmax int) *Alm {
	return &Alm{Lmax: lmax, Coef: make([]complex128, Size(lmax))}
}

// Index returns the flat index of (l, m). Valid for 0 <= m <= l <= Lmax.
func (a *Alm) Index(l, m int) int {
	return m*(2*a.Lmax+1-m)/2 + l
}

// Get returns the coefficient at (l, m).
func (a *Alm) Get(l, m int) complex128 {
	return a.Coef[a.Index(l, m)]
}

// Set stores the coefficient at (l, m).
func (a *Alm) Set(l, m int, v complex128) {
	a.Coef[a.Index(l, m)] = v
}

// Copy returns an independent copy.
func (a *Alm) Copy() *Alm {
	out := &Alm{Lmax: a.Lmax, Coef: make([]complex128, len(a.Coef))}
	copy(out.Coef, a.Coef)
	return out
}

// FilterDegree returns a coefficient set with every degree except l zeroed,
// isolating one multipole's contribution.
func (a *Alm) FilterDegree(l int) *Alm {
	out := NewAlm(a.Lmax)
	if l < 0 || l > a.Lmax {
		return out
	}
	for m := 0; m <= l; m++ {
		out.Set(l, m, a.Get(l, m))
	}
	return out
}

// DegreePower returns the total power at degree l: |a_l0|^2 plus twice the
// m > 0 terms, standing in for the implicit negative-m coefficients.
func (a *Alm) DegreePower(l int) float64 {
	if l < 0 || l > a.Lmax {
		return 0
	}
	c := a.Get(l, 0)
	total := real(c)*real(c) + imag(c)*imag(c)
	for m := 1; m <= l; m++ {
		c = a.Get(l, m)
		total += 2 * (real(c)*real(c) + imag(c)*imag(c))
	}
	return total
}
