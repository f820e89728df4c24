package fieldtrack

// component B: the vertical locator. Z-grids walk a single shared
// column; S-grids synthesize a column at the horizontal cell located
// by component A (optionally blending two time samples) and then walk
// it the same way.

// maxStackColumn bounds the size of a vertical column that
// locateVerticalS builds on the stack before falling back to a heap
// allocation; most ocean/atmosphere grids have far fewer than this
// many vertical levels.
const maxStackColumn = 128

func locateVertical(g *Grid, z float64, xi, yi int32, xsi, eta float64, ti int32, time, t0, t1 float64, cur *Cursor) (zeta float64, err error) {
	if g.isS() {
		return locateVerticalS(g, z, xi, yi, xsi, eta, ti, time, t0, t1, cur)
	}
	return walkVertical(g.ZVals, z, &cur.Zi)
}

// walkVertical is search_indices_vertical_z applied to an arbitrary
// monotone column: it walks *zi toward the bracket containing z,
// backing off the last level so the returned index always has a valid
// zi+1 neighbor.
func walkVertical(zvals []float64, z float64, zi *int32) (float64, error) {
	zdim := int32(len(zvals))
	if z < zvals[0] || z > zvals[zdim-1] {
		return 0, newError(OutOfBounds, "z=%v outside vertical domain [%v, %v]", z, zvals[0], zvals[zdim-1])
	}
	for *zi < zdim-1 && z > zvals[*zi+1] {
		*zi++
	}
	for *zi > 0 && z < zvals[*zi] {
		*zi--
	}
	if *zi == zdim-1 {
		*zi--
	}
	return (z - zvals[*zi]) / (zvals[*zi+1] - zvals[*zi]), nil
}

// locateVerticalS synthesizes the vertical column standing over the
// horizontal cell (xi, yi, xsi, eta) by bilinearly interpolating the
// grid's depth table at every level, blending across the two
// bracketing time samples first when the table is four-dimensional.
func locateVerticalS(g *Grid, z float64, xi, yi int32, xsi, eta float64, ti int32, time, t0, t1 float64, cur *Cursor) (float64, error) {
	zdim := g.Zdim

	var stackColumn [maxStackColumn]float64
	var column []float64
	if int(zdim) <= len(stackColumn) {
		column = stackColumn[:zdim]
	} else {
		column = make([]float64, zdim)
	}

	if g.Z4D {
		ti1 := ti
		if ti < g.Tdim-1 {
			ti1 = ti + 1
		}
		var w float64
		if t1 != t0 {
			w = (time - t0) / (t1 - t0)
		}
		for k := int32(0); k < zdim; k++ {
			d0 := bilinearDepth(g.SDepth, ti, k, xi, yi, xsi, eta, true)
			d1 := bilinearDepth(g.SDepth, ti1, k, xi, yi, xsi, eta, true)
			column[k] = d0 + (d1-d0)*w
		}
	} else {
		for k := int32(0); k < zdim; k++ {
			column[k] = bilinearDepth(g.SDepth, 0, k, xi, yi, xsi, eta, false)
		}
	}

	return walkVertical(column, z, &cur.Zi)
}
