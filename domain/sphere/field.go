package sphere

import (
	"math"

	"skynull/domain/core"
)

// Field is a scalar sample per pixel of a Scheme, in RING order. Masked or
// unobserved pixels hold Unseen.
type Field []float64

// NewField allocates a zero field at the given resolution.
func NewField(nside int) Field {
	return make(Field, 12*nside*nside)
}

// NSide infers the field's resolution from its length.
func (f Field) NSide() (int, error) {
	return NSideForPixels(len(f))
}

// Copy returns an independent copy.
func (f Field) Copy() Field {
	g := make(Field, len(f))
	copy(g, f)
	return g
}

// Seen reports whether pixel i holds an observed value.
func (f Field) Seen(i int) bool {
	v := f[i]
	return v != Unseen && !math.IsNaN(v)
}

// SeenCount returns the number of observed pixels.
func (f Field) SeenCount() int {
	n := 0
	for i := range f {
		if f.Seen(i) {
			n++
		}
	}
	return n
}

// Mean returns the mean over observed pixels, 0 for an all-masked field.
func (f Field) Mean() float64 {
	sum, n := 0.0, 0
	for i, v := range f {
		if f.Seen(i) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Correlation returns the Pearson correlation over pixels observed in both
// fields. Degenerate inputs (constant or empty overlap) yield 0.
func (f Field) Correlation(g Field) float64 {
	if len(f) != len(g) {
		return 0
	}
	var sx, sy, sxx, syy, sxy float64
	n := 0
	for i := range f {
		if !f.Seen(i) || !g.Seen(i) {
			continue
		}
		x, y := f[i], g[i]
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
		n++
	}
	if n < 2 {
		return 0
	}
	fn := float64(n)
	cov := sxy - sx*sy/fn
	vx := sxx - sx*sx/fn
	vy := syy - sy*sy/fn
	if vx <= 0 || vy <= 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

// Downgrade resamples the field to a coarser resolution by averaging the fine
// pixels whose centers fall inside each coarse pixel. Unseen fine pixels are
// skipped; a coarse pixel with no observed contributors becomes Unseen.
// Upsampling is refused: lower-resolution input never enters the pipeline.
func (f Field) Downgrade(target int) (Field, error) {
	nsideIn, err := f.NSide()
	if err != nil {
		return nil, err
	}
	if nsideIn < target {
		return nil, core.NewResolutionError(nsideIn, target)
	}
	if nsideIn == target {
		return f.Copy(), nil
	}

	fine, err := NewScheme(nsideIn)
	if err != nil {
		return nil, err
	}
	coarse, err := NewScheme(target)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, coarse.Npix())
	counts := make([]int, coarse.Npix())
	for p := range f {
		if !f.Seen(p) {
			continue
		}
		theta, phi := fine.PixToAng(p)
		q := coarse.AngToPix(theta, phi)
		sums[q] += f[p]
		counts[q]++
	}

	out := NewField(target)
	for q := range out {
		if counts[q] == 0 {
			out[q] = Unseen
			continue
		}
		out[q] = sums[q] / float64(counts[q])
	}
	return out, nil
}
