package fieldtrack

import "bitbucket.org/ctessum/sparse"

// component D: the spatial interpolation kernels. Each reads a single
// time slice ti of data shaped [tdim][zdim][ydim][xdim] and blends the
// corner values bracketing (xi, yi[, zi]) by (xsi, eta[, zeta]).

// bilinearDepth reads the grid's depth table (shaped
// [zdim][ydim][xdim], or [tdim][zdim][ydim][xdim] when z4d) and
// bilinearly interpolates it at (xsi, eta) for vertical level k.
func bilinearDepth(depth *sparse.DenseArray, ti, k, xi, yi int32, xsi, eta float64, z4d bool) float64 {
	get := func(dy, dx int32) float64 {
		if z4d {
			return depth.Get(int(ti), int(k), int(yi+dy), int(xi+dx))
		}
		return depth.Get(int(k), int(yi+dy), int(xi+dx))
	}
	return (1-xsi)*(1-eta)*get(0, 0) +
		xsi*(1-eta)*get(0, 1) +
		xsi*eta*get(1, 1) +
		(1-xsi)*eta*get(1, 0)
}

func bilinear(data *sparse.DenseArray, ti, zi, yi, xi int32, xsi, eta float64) float64 {
	return (1-xsi)*(1-eta)*data.Get(int(ti), int(zi), int(yi), int(xi)) +
		xsi*(1-eta)*data.Get(int(ti), int(zi), int(yi), int(xi)+1) +
		xsi*eta*data.Get(int(ti), int(zi), int(yi)+1, int(xi)+1) +
		(1-xsi)*eta*data.Get(int(ti), int(zi), int(yi)+1, int(xi))
}

func trilinear(data *sparse.DenseArray, ti, zi, yi, xi int32, xsi, eta, zeta float64) float64 {
	f0 := bilinear(data, ti, zi, yi, xi, xsi, eta)
	f1 := bilinear(data, ti, zi+1, yi, xi, xsi, eta)
	return (1-zeta)*f0 + zeta*f1
}

func nearest2D(data *sparse.DenseArray, ti, zi, yi, xi int32, xsi, eta float64) float64 {
	ii, jj := xi, yi
	if xsi >= 0.5 {
		ii++
	}
	if eta >= 0.5 {
		jj++
	}
	return data.Get(int(ti), int(zi), int(jj), int(ii))
}

func nearest3D(data *sparse.DenseArray, ti, zi, yi, xi int32, xsi, eta, zeta float64) float64 {
	ii, jj, kk := xi, yi, zi
	if xsi >= 0.5 {
		ii++
	}
	if eta >= 0.5 {
		jj++
	}
	if zeta >= 0.5 {
		kk++
	}
	return data.Get(int(ti), int(kk), int(jj), int(ii))
}

// spatialInterp dispatches to the kernel selected by method, collapsing
// to the 2D form when the field has a single vertical level.
func spatialInterp(method InterpCode, data *sparse.DenseArray, ti, zi, yi, xi int32, zdim int32, xsi, eta, zeta float64) (float64, error) {
	switch method {
	case Linear:
		if zdim == 1 {
			return bilinear(data, ti, 0, yi, xi, xsi, eta), nil
		}
		return trilinear(data, ti, zi, yi, xi, xsi, eta, zeta), nil
	case Nearest:
		if zdim == 1 {
			return nearest2D(data, ti, 0, yi, xi, xsi, eta), nil
		}
		return nearest3D(data, ti, zi, yi, xi, xsi, eta, zeta), nil
	default:
		return 0, newError(ErrorUnknown, "unknown interpolation method %v", int32(method))
	}
}
