package fieldtrack

import "bitbucket.org/ctessum/sparse"

// InterpCode selects the spatial interpolation kernel used by
// TemporalInterpolation, mirroring the original C sampler's
// InterpCode enum.
type InterpCode int32

const (
	// Linear selects bilinear (2D fields) or trilinear (3D fields)
	// interpolation.
	Linear InterpCode = iota
	// Nearest selects nearest-neighbor interpolation.
	Nearest
)

// Field binds a Grid to the data sampled on it. Data is shaped
// [Tdim][Zdim][Ydim][Xdim]; a 2D field sets Zdim to 1. Field values
// are read-only for the duration of any query.
type Field struct {
	Grid *Grid
	Data *sparse.DenseArray

	// AllowTimeExtrapolation permits queries outside the grid's time
	// axis to hold the nearest sample instead of failing.
	AllowTimeExtrapolation bool
	// TimePeriodic treats the time axis as one period of a repeating
	// cycle instead of a bounded interval.
	TimePeriodic bool
}

// NewField binds grid and data into a queryable Field.
func NewField(grid *Grid, data *sparse.DenseArray, allowTimeExtrapolation, timePeriodic bool) *Field {
	return &Field{
		Grid:                   grid,
		Data:                   data,
		AllowTimeExtrapolation: allowTimeExtrapolation,
		TimePeriodic:           timePeriodic,
	}
}

// locateIndices is search_indices from the original C sampler: it
// runs the horizontal locator (component A) and, for 3D grids, the
// vertical locator (component B), then validates that the resulting
// normalized coordinates all lie in [0, 1].
func locateIndices(g *Grid, x, y, z float64, ti int32, time, t0, t1 float64, cur *Cursor) (xsi, eta, zeta float64, err error) {
	xsi, eta, err = locateHorizontal(g, x, y, cur)
	if err != nil {
		return 0, 0, 0, err
	}
	if xsi < 0 || xsi > 1 {
		return 0, 0, 0, newError(OutOfBounds, "xsi=%v outside [0, 1]", xsi)
	}
	if eta < 0 || eta > 1 {
		return 0, 0, 0, newError(OutOfBounds, "eta=%v outside [0, 1]", eta)
	}

	if g.Zdim > 1 {
		zeta, err = locateVertical(g, z, cur.Xi, cur.Yi, xsi, eta, ti, time, t0, t1, cur)
		if err != nil {
			return 0, 0, 0, err
		}
		if zeta < 0 || zeta > 1 {
			return 0, 0, 0, newError(OutOfBounds, "zeta=%v outside [0, 1]", zeta)
		}
	}
	return xsi, eta, zeta, nil
}

// TemporalInterpolation samples f at (x, y, z, t), warm-starting the
// search from and writing the result back into cur. cur is updated in
// place even when the query fails partway through, matching the
// original sampler's cursor discipline: a partially advanced cursor is
// still a better warm start for the next call than a stale one.
//
// Callers that sample several Fields bound to the same Grid (for
// example the U and V components of a velocity field, see
// TemporalInterpolationUV) should share one Cursor between them, the
// same way the original sampler indexes its cursor arrays by a
// per-grid "igrid" slot.
func TemporalInterpolation(f *Field, x, y, z, t float64, cur *Cursor, method InterpCode) (float64, error) {
	g := f.Grid

	reducedT, err := locateTime(g.Time, t, f.TimePeriodic, f.AllowTimeExtrapolation, cur)
	if err != nil {
		return 0, err
	}
	t = reducedT

	if cur.Ti < g.Tdim-1 && t > g.Time[cur.Ti] {
		t0 := g.Time[cur.Ti]
		t1 := g.Time[cur.Ti+1]

		xsi, eta, zeta, err := locateIndices(g, x, y, z, cur.Ti, t, t0, t1, cur)
		if err != nil {
			return 0, err
		}
		f0, err := spatialInterp(method, f.Data, cur.Ti, cur.Zi, cur.Yi, cur.Xi, g.Zdim, xsi, eta, zeta)
		if err != nil {
			return 0, err
		}
		f1, err := spatialInterp(method, f.Data, cur.Ti+1, cur.Zi, cur.Yi, cur.Xi, g.Zdim, xsi, eta, zeta)
		if err != nil {
			return 0, err
		}
		return f0 + (f1-f0)*(t-t0)/(t1-t0), nil
	}

	// Single-sample branch: the query falls on or past the last time
	// sample, so relocate with a synthetic one-unit interval starting
	// at that sample and evaluate it once.
	t0 := g.Time[cur.Ti]
	xsi, eta, zeta, err := locateIndices(g, x, y, z, cur.Ti, t0, t0, t0+1, cur)
	if err != nil {
		return 0, err
	}
	return spatialInterp(method, f.Data, cur.Ti, cur.Zi, cur.Yi, cur.Xi, g.Zdim, xsi, eta, zeta)
}
