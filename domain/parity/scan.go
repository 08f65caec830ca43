package parity

import (
	"context"

	"golang.org/x/sync/errgroup"

	"skynull/domain/sphere"
)

// Scan evaluates the parity statistic once per direction of a coarse grid:
// for every pixel center of a scheme at scanNSide, the field is re-poled to
// that direction and PointParity recomputed. The result is itself a field on
// the coarse grid. Each direction is an independent unit of work; workers
// bounds the parallelism (<=0 means sequential).
func Scan(ctx context.Context, f sphere.Field, scanNSide, lmin, lmax, workers int) (sphere.Field, error) {
	nside, err := f.NSide()
	if err != nil {
		return nil, err
	}
	full, err := sphere.NewScheme(nside)
	if err != nil {
		return nil, err
	}
	grid, err := sphere.NewScheme(scanNSide)
	if err != nil {
		return nil, err
	}

	results := sphere.NewField(scanNSide)
	if workers <= 1 {
		for p := 0; p < grid.Npix(); p++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[p], err = scanDirection(full, f, grid, p, lmin, lmax)
			if err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for p := 0; p < grid.Npix(); p++ {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := scanDirection(full, f, grid, p, lmin, lmax)
			if err != nil {
				return err
			}
			results[p] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanDirection(full *sphere.Scheme, f sphere.Field, grid *sphere.Scheme, pix, lmin, lmax int) (float64, error) {
	theta, phi := grid.PixToAng(pix)
	rot := sphere.RotationToPole(theta, phi)
	rotated := rot.RotateField(full, f)
	return PointParity(rotated, lmin, lmax)
}
