package fieldtrack

import "math"

// component A: the horizontal locator. locateHorizontal sets cur.Xi,
// cur.Yi (in place) and returns the normalized intra-cell coordinates
// (xsi, eta) such that the cell [(xi, yi), (xi+1, yi+1)] contains
// (x, y).

const (
	sphericalSearchMaxIter   = 10000
	curvilinearSearchMaxIter = 1000000
)

func locateHorizontal(g *Grid, x, y float64, cur *Cursor) (xsi, eta float64, err error) {
	if g.isCurvilinear() {
		return locateCurvilinearXY(g, x, y, cur)
	}
	return locateRectilinearXY(g, x, y, cur)
}

func locateRectilinearXY(g *Grid, x, y float64, cur *Cursor) (xsi, eta float64, err error) {
	lon, lat := g.Lon, g.Lat
	xdim, ydim := g.Xdim, g.Ydim

	if !g.SphereMesh {
		if x < lon[0] || x > lon[xdim-1] {
			return 0, 0, newError(OutOfBounds, "x=%v outside rectilinear domain [%v, %v]", x, lon[0], lon[xdim-1])
		}
		for cur.Xi < xdim-1 && x > lon[cur.Xi+1] {
			cur.Xi++
		}
		for cur.Xi > 0 && x < lon[cur.Xi] {
			cur.Xi--
		}
		xsi = (x - lon[cur.Xi]) / (lon[cur.Xi+1] - lon[cur.Xi])
	} else {
		if !g.ZonalPeriodic && sphericalXOutOfRange(x, lon[0], lon[xdim-1]) {
			return 0, 0, newError(OutOfBounds, "x=%v outside spherical domain [%v, %v]", x, lon[0], lon[xdim-1])
		}

		xi := cur.Xi
		xlo := unwrapNear(lon[xi], x)
		xhi := unwrapWithin180(lon[xi+1], xlo)

		it := 0
		for xlo > x || xhi < x {
			if xhi < x {
				xi++
			} else if xlo > x {
				xi--
			}
			clampXiSpherical(&xi, xdim)
			xlo = unwrapNear(lon[xi], x)
			xhi = unwrapWithin180(lon[xi+1], xlo)
			it++
			if it > sphericalSearchMaxIter {
				return 0, 0, newError(OutOfBounds, "longitude search did not converge after %d iterations", sphericalSearchMaxIter)
			}
		}
		cur.Xi = xi
		xsi = (x - xlo) / (xhi - xlo)
	}

	if y < lat[0] || y > lat[ydim-1] {
		return 0, 0, newError(OutOfBounds, "y=%v outside domain [%v, %v]", y, lat[0], lat[ydim-1])
	}
	for cur.Yi < ydim-1 && y > lat[cur.Yi+1] {
		cur.Yi++
	}
	for cur.Yi > 0 && y < lat[cur.Yi] {
		cur.Yi--
	}
	eta = (y - lat[cur.Yi]) / (lat[cur.Yi+1] - lat[cur.Yi])
	return xsi, eta, nil
}

// sphericalXOutOfRange is the early-rejection predicate from the
// original source for a non-periodic spherical longitude axis. On an
// ascending axis it correctly rejects x outside [lon0, lonN]. On a
// descending axis it reuses && where || would be correct, so some
// out-of-range points are admitted instead of rejected; this is
// preserved intentionally (see SPEC_FULL.md §6 and spec.md §9).
func sphericalXOutOfRange(x, lon0, lonN float64) bool {
	if lon0 < lonN {
		return x < lon0 || x > lonN
	}
	return x < lon0 && x > lonN
}

// unwrapNear normalizes a longitude value into the band (x-225, x+225].
func unwrapNear(lon, x float64) float64 {
	if lon < x-225 {
		lon += 360
	}
	if lon > x+225 {
		lon -= 360
	}
	return lon
}

// unwrapWithin180 normalizes lon into (ref-180, ref+180].
func unwrapWithin180(lon, ref float64) float64 {
	if lon < ref-180 {
		lon += 360
	}
	if lon > ref+180 {
		lon -= 360
	}
	return lon
}

func clampXiSpherical(xi *int32, xdim int32) {
	if *xi < 0 {
		*xi = xdim - 2
	}
	if *xi > xdim-2 {
		*xi = 0
	}
}

// clamp2D is fix_2d_indices from the original source: it clamps the
// curvilinear search cursor after an out-of-cell step, wrapping
// zonally on a sphere and mirroring xi across the pole when yi clamps
// past the top row.
func clamp2D(xi, yi *int32, xdim, ydim int32, sphereMesh bool) {
	if *xi < 0 {
		if sphereMesh {
			*xi = xdim - 2
		} else {
			*xi = 0
		}
	}
	if *xi > xdim-2 {
		if sphereMesh {
			*xi = 0
		} else {
			*xi = xdim - 2
		}
	}
	if *yi < 0 {
		*yi = 0
	}
	if *yi > ydim-2 {
		*yi = ydim - 2
		if sphereMesh {
			*xi = xdim - *xi
		}
	}
}

// locateCurvilinearXY runs the iterative inverse bilinear map over the
// quadrilateral mesh, warm-started from cur.Xi, cur.Yi.
func locateCurvilinearXY(g *Grid, x, y float64, cur *Cursor) (xsi, eta float64, err error) {
	xdim, ydim := g.Xdim, g.Ydim

	if !g.ZonalPeriodic || !g.SphereMesh {
		x00 := g.lonAt(0, 0)
		x0n := g.lonAt(xdim-1, 0)
		if x00 < x0n {
			if x < x00 || x > x0n {
				return 0, 0, newError(OutOfBounds, "x=%v outside curvilinear domain [%v, %v]", x, x00, x0n)
			}
		} else if x < x00 && x > x0n {
			return 0, 0, newError(OutOfBounds, "x=%v outside curvilinear domain [%v, %v]", x, x00, x0n)
		}
	}

	xsi, eta = -1, -1
	it := 0
	for xsi < 0 || xsi > 1 || eta < 0 || eta > 1 {
		xi, yi := cur.Xi, cur.Yi

		x0 := g.lonAt(xi, yi)
		x1 := g.lonAt(xi+1, yi)
		x2 := g.lonAt(xi+1, yi+1)
		x3 := g.lonAt(xi, yi+1)
		if g.SphereMesh {
			x0 = unwrapNear(x0, x)
			x1 = unwrapWithin180(x1, x0)
			x2 = unwrapWithin180(x2, x0)
			x3 = unwrapWithin180(x3, x0)
		}
		y0 := g.latAt(xi, yi)
		y1 := g.latAt(xi+1, yi)
		y2 := g.latAt(xi+1, yi+1)
		y3 := g.latAt(xi, yi+1)

		a0 := x0
		a1 := -x0 + x1
		a2 := -x0 + x3
		a3 := x0 - x1 + x2 - x3
		b0 := y0
		b1 := -y0 + y1
		b2 := -y0 + y3
		b3 := y0 - y1 + y2 - y3

		aa := a3*b2 - a2*b3
		bb := a3*b0 - a0*b3 + a1*b2 - a2*b1 + x*b3 - y*a3
		cc := a1*b0 - a0*b1 + x*b1 - y*a1

		if math.Abs(aa) < 1e-12 {
			eta = -cc / bb
		} else {
			det := math.Sqrt(bb*bb - 4*aa*cc)
			if det == det { // NaN discriminant: deliberately keep eta
				// from the previous iteration, an escape heuristic for
				// degenerate cells that would otherwise oscillate.
				eta = (-bb + det) / (2 * aa)
			}
		}
		xsi = (x - a0 - a2*eta) / (a1 + a3*eta)

		if xsi < 0 && eta < 0 && xi == 0 && yi == 0 {
			return 0, 0, newError(OutOfBounds, "point lies outside the lower-left domain corner")
		}
		if xsi > 1 && eta > 1 && xi == xdim-2 && yi == ydim-2 {
			return 0, 0, newError(OutOfBounds, "point lies outside the upper-right domain corner")
		}
		if xsi < 0 {
			xi--
		}
		if xsi > 1 {
			xi++
		}
		if eta < 0 {
			yi--
		}
		if eta > 1 {
			yi++
		}
		clamp2D(&xi, &yi, xdim, ydim, g.SphereMesh)
		cur.Xi, cur.Yi = xi, yi

		it++
		if it > curvilinearSearchMaxIter {
			return 0, 0, newError(OutOfBounds, "curvilinear cell search did not converge after %d iterations", curvilinearSearchMaxIter)
		}
	}
	if xsi != xsi || eta != eta {
		return 0, 0, newError(OutOfBounds, "xsi or eta is NaN")
	}
	return xsi, eta, nil
}
