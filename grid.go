package fieldtrack

import "bitbucket.org/ctessum/sparse"

// GridCode tags the four supported grid topologies, mirroring the
// original C sampler's GridCode enum.
type GridCode int32

const (
	// RectilinearZ grids have separable, monotone lon/lat axes and a
	// vertical column shared by every water/air column in the domain.
	RectilinearZ GridCode = iota
	// RectilinearS grids have separable horizontal axes but a vertical
	// table that depends on (x, y) and optionally time.
	RectilinearS
	// CurvilinearZ grids have a general quadrilateral mesh and a shared
	// vertical column.
	CurvilinearZ
	// CurvilinearS grids combine a curvilinear mesh with a
	// terrain-following vertical table.
	CurvilinearS
)

func (g GridCode) String() string {
	switch g {
	case RectilinearZ:
		return "rectilinear-Z"
	case RectilinearS:
		return "rectilinear-S"
	case CurvilinearZ:
		return "curvilinear-Z"
	case CurvilinearS:
		return "curvilinear-S"
	default:
		return "unknown grid"
	}
}

// Grid describes one structured horizontal mesh and its vertical
// coordinate table. It is immutable for the lifetime of any query;
// ownership of the backing arrays stays with the caller.
//
// Horizontal coordinates are interpreted according to Code:
//   - RectilinearZ, RectilinearS: Lon has length Xdim, Lat has length
//     Ydim (both 1D, monotone).
//   - CurvilinearZ, CurvilinearS: Lon and Lat both have length
//     Xdim*Ydim, row-major ([ydim][xdim] flattened), describing the
//     mesh node at every (xi, yi).
//
// The vertical table is interpreted according to Code:
//   - RectilinearZ, CurvilinearZ: ZVals has length Zdim (1D, shared by
//     every column).
//   - RectilinearS, CurvilinearS: SDepth is a *sparse.DenseArray shaped
//     [Zdim][Ydim][Xdim], or [Tdim][Zdim][Ydim][Xdim] when Z4D is true.
type Grid struct {
	Code GridCode

	Xdim, Ydim, Zdim, Tdim int32

	// SphereMesh marks lon/lat as angular degrees requiring wrap-aware
	// comparison; ZonalPeriodic marks the x-axis as wrapping globally.
	SphereMesh, ZonalPeriodic bool

	// Z4D marks an S-grid vertical table as depending on time in
	// addition to (x, y, z).
	Z4D bool

	// Lon, Lat hold the horizontal mesh coordinates; see type doc for
	// their shape depending on Code.
	Lon, Lat []float64

	// ZVals holds the 1D vertical column for Z-grids. Nil for S-grids.
	ZVals []float64

	// SDepth holds the position-(and optionally time-)dependent
	// vertical table for S-grids. Nil for Z-grids.
	SDepth *sparse.DenseArray

	// Time is the strictly increasing time axis shared by every field
	// bound to this grid.
	Time []float64
}

// lonAt/latAt return the mesh node at (xi, yi) of a curvilinear grid,
// whose Lon and Lat are [ydim][xdim] flattened. They are not valid for
// rectilinear grids, whose 1D axes horizontal.go indexes directly.
func (g *Grid) lonAt(xi, yi int32) float64 {
	return g.Lon[int(yi)*int(g.Xdim)+int(xi)]
}

func (g *Grid) latAt(xi, yi int32) float64 {
	return g.Lat[int(yi)*int(g.Xdim)+int(xi)]
}

// NewRectilinearZGrid constructs a Grid with separable horizontal axes
// and a depth-aligned (position-independent) vertical column.
func NewRectilinearZGrid(lon, lat, depth, time []float64, sphereMesh, zonalPeriodic bool) *Grid {
	return &Grid{
		Code:          RectilinearZ,
		Xdim:          int32(len(lon)),
		Ydim:          int32(len(lat)),
		Zdim:          int32(len(depth)),
		Tdim:          int32(len(time)),
		SphereMesh:    sphereMesh,
		ZonalPeriodic: zonalPeriodic,
		Lon:           lon,
		Lat:           lat,
		ZVals:         depth,
		Time:          time,
	}
}

// NewRectilinearSGrid constructs a Grid with separable horizontal axes
// and a terrain-following vertical table shaped [zdim][ydim][xdim] (or
// [tdim][zdim][ydim][xdim] when z4D is true).
func NewRectilinearSGrid(lon, lat []float64, depth *sparse.DenseArray, time []float64, sphereMesh, zonalPeriodic, z4D bool) *Grid {
	zdim, _ := sDepthDims(depth, z4D)
	return &Grid{
		Code:          RectilinearS,
		Xdim:          int32(len(lon)),
		Ydim:          int32(len(lat)),
		Zdim:          int32(zdim),
		Tdim:          int32(len(time)),
		SphereMesh:    sphereMesh,
		ZonalPeriodic: zonalPeriodic,
		Z4D:           z4D,
		Lon:           lon,
		Lat:           lat,
		SDepth:        depth,
		Time:          time,
	}
}

// NewCurvilinearZGrid constructs a Grid whose horizontal mesh is a
// general quadrilateral grid (lon/lat given per node) and whose
// vertical column is shared by every column.
func NewCurvilinearZGrid(lon, lat []float64, xdim, ydim int32, depth, time []float64, sphereMesh, zonalPeriodic bool) *Grid {
	return &Grid{
		Code:          CurvilinearZ,
		Xdim:          xdim,
		Ydim:          ydim,
		Zdim:          int32(len(depth)),
		Tdim:          int32(len(time)),
		SphereMesh:    sphereMesh,
		ZonalPeriodic: zonalPeriodic,
		Lon:           lon,
		Lat:           lat,
		ZVals:         depth,
		Time:          time,
	}
}

// NewCurvilinearSGrid constructs a Grid combining a curvilinear
// horizontal mesh with a terrain-following vertical table.
func NewCurvilinearSGrid(lon, lat []float64, xdim, ydim int32, depth *sparse.DenseArray, time []float64, sphereMesh, zonalPeriodic, z4D bool) *Grid {
	zdim, _ := sDepthDims(depth, z4D)
	return &Grid{
		Code:          CurvilinearS,
		Xdim:          xdim,
		Ydim:          ydim,
		Zdim:          int32(zdim),
		Tdim:          int32(len(time)),
		SphereMesh:    sphereMesh,
		ZonalPeriodic: zonalPeriodic,
		Z4D:           z4D,
		Lon:           lon,
		Lat:           lat,
		SDepth:        depth,
		Time:          time,
	}
}

func sDepthDims(depth *sparse.DenseArray, z4D bool) (zdim, ydim int) {
	if z4D {
		return depth.Shape[1], depth.Shape[2]
	}
	return depth.Shape[0], depth.Shape[1]
}

// isS reports whether g uses a terrain-following (position-dependent)
// vertical coordinate.
func (g *Grid) isS() bool {
	return g.Code == RectilinearS || g.Code == CurvilinearS
}

// isCurvilinear reports whether g's horizontal mesh is a general
// quadrilateral grid rather than separable axes.
func (g *Grid) isCurvilinear() bool {
	return g.Code == CurvilinearZ || g.Code == CurvilinearS
}
