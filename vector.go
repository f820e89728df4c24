package fieldtrack

// component F: vector sampling. Both functions share one Cursor across
// every component field, matching the per-grid cursor convention
// described on TemporalInterpolation.

// TemporalInterpolationUV samples the u and v components of a vector
// field at the same point and time, sharing cur between them.
func TemporalInterpolationUV(u, v *Field, x, y, z, t float64, cur *Cursor, method InterpCode) (uVal, vVal float64, err error) {
	uVal, err = TemporalInterpolation(u, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	vVal, err = TemporalInterpolation(v, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	return uVal, vVal, nil
}

// TemporalInterpolationUVRotation samples u and v along with four
// per-point rotation fields (cosU, sinU, cosV, sinV) that map a
// curvilinear grid's local i/j axes onto true east/north, and applies
// the rotation. The asymmetric pairing of cosU with sinV (rather than
// sinU) matches the rotation matrix used by the original sampler.
func TemporalInterpolationUVRotation(u, v, cosU, sinU, cosV, sinV *Field, x, y, z, t float64, cur *Cursor, method InterpCode) (uVal, vVal float64, err error) {
	uRaw, err := TemporalInterpolation(u, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	vRaw, err := TemporalInterpolation(v, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	cu, err := TemporalInterpolation(cosU, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	su, err := TemporalInterpolation(sinU, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	cv, err := TemporalInterpolation(cosV, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}
	sv, err := TemporalInterpolation(sinV, x, y, z, t, cur, method)
	if err != nil {
		return 0, 0, err
	}

	uVal = uRaw*cu - vRaw*sv
	vVal = uRaw*su + vRaw*cv
	return uVal, vVal, nil
}
