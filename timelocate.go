package fieldtrack

import "math"

// component C: the time locator. locateTime reduces t onto the
// field's time axis (wrapping once for a periodic axis) and walks
// cur.Ti to the bracketing sample, returning the (possibly reduced)
// time value the caller should use for the rest of the query.
func locateTime(tvals []float64, t float64, periodic, allowExtrapolation bool, cur *Cursor) (float64, error) {
	tdim := int32(len(tvals))
	if cur.Ti < 0 {
		cur.Ti = 0
	}

	switch {
	case periodic:
		if t < tvals[0] || t > tvals[tdim-1] {
			period := tvals[tdim-1] - tvals[0]
			periods := math.Floor((t - tvals[0]) / period)
			t -= periods * period
		}
	case !allowExtrapolation && (t < tvals[0] || t > tvals[tdim-1]):
		return t, newError(TimeExtrapolation, "t=%v outside time axis [%v, %v]", t, tvals[0], tvals[tdim-1])
	}

	for cur.Ti < tdim-1 && t >= tvals[cur.Ti+1] {
		cur.Ti++
	}
	for cur.Ti > 0 && t < tvals[cur.Ti] {
		cur.Ti--
	}
	return t, nil
}
