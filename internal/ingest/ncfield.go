// Portions of this file (the NetCDF variable/attribute read loop) are
// adapted from InMAP's vargrid.go (LoadCTMData), copyright © 2013 the
// InMAP authors, licensed under the GNU General Public License v3 or
// later. See <http://www.gnu.org/licenses/>.

// Package ingest loads a Grid and Field pair out of a NetCDF file. It
// is a supporting tool, not part of the sampler core: fieldtrack
// itself never opens a file.
package ingest

import (
	"fmt"
	"log"
	"time"

	"bitbucket.org/ctessum/cdf"
	"bitbucket.org/ctessum/sparse"
	"github.com/cenkalti/backoff"

	"github.com/spatialfield/fieldtrack"
)

// attrGridCode and friends name the global NetCDF attributes this
// loader expects, following the same "global attribute carries grid
// metadata" convention vargrid.go's LoadCTMData uses for dx/dy/nx/ny.
const (
	attrGridCode      = "grid_code"
	attrSphereMesh    = "sphere_mesh"
	attrZonalPeriodic = "zonal_periodic"
	attrZ4D           = "z4d"
)

// LoadField opens the NetCDF file behind rw and reads a Grid and a
// Field named dataVar from it. The expected variables are "lon",
// "lat", "depth" (or "depth_s" for terrain-following grids), "time",
// and dataVar. "lon" and "lat" are 1D for rectilinear grids and
// [ydim][xdim] for curvilinear ones; "depth_s" is [zdim][ydim][xdim]
// ([tdim][zdim][ydim][xdim] when z4d is set); dataVar is
// [tdim][zdim][ydim][xdim].
//
// The open is retried with exponential backoff, mirroring the retry
// wrapped around remote output opens in InMAP's sr tool: NetCDF files
// read from network-backed storage intermittently fail their first
// open attempt.
func LoadField(rw cdf.ReaderWriterAt, dataVar string, allowTimeExtrapolation, timePeriodic bool) (*fieldtrack.Field, error) {
	var f *cdf.File
	err := backoff.RetryNotify(
		func() error {
			var err error
			f, err = cdf.Open(rw)
			return err
		},
		backoff.NewExponentialBackOff(),
		func(err error, d time.Duration) {
			log.Printf("ingest: retrying NetCDF open in %v: %v", d, err)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ingest.LoadField: %v", err)
	}

	gridCode := fieldtrack.GridCode(f.Header.GetAttribute("", attrGridCode).([]int32)[0])
	sphereMesh := readBoolAttr(f, attrSphereMesh)
	zonalPeriodic := readBoolAttr(f, attrZonalPeriodic)
	z4D := readBoolAttr(f, attrZ4D)

	lon, err := readFloats(f, "lon")
	if err != nil {
		return nil, fmt.Errorf("ingest.LoadField: %v", err)
	}
	lat, err := readFloats(f, "lat")
	if err != nil {
		return nil, fmt.Errorf("ingest.LoadField: %v", err)
	}
	timeVals, err := readFloats(f, "time")
	if err != nil {
		return nil, fmt.Errorf("ingest.LoadField: %v", err)
	}

	grid, err := buildGrid(f, gridCode, lon, lat, timeVals, sphereMesh, zonalPeriodic, z4D)
	if err != nil {
		return nil, fmt.Errorf("ingest.LoadField: %v", err)
	}

	data, err := readDense(f, dataVar)
	if err != nil {
		return nil, fmt.Errorf("ingest.LoadField: %v", err)
	}

	return fieldtrack.NewField(grid, data, allowTimeExtrapolation, timePeriodic), nil
}

func buildGrid(f *cdf.File, code fieldtrack.GridCode, lon, lat, timeVals []float64, sphereMesh, zonalPeriodic, z4D bool) (*fieldtrack.Grid, error) {
	switch code {
	case fieldtrack.RectilinearZ:
		depth, err := readFloats(f, "depth")
		if err != nil {
			return nil, err
		}
		return fieldtrack.NewRectilinearZGrid(lon, lat, depth, timeVals, sphereMesh, zonalPeriodic), nil
	case fieldtrack.RectilinearS:
		depth, err := readDense(f, "depth_s")
		if err != nil {
			return nil, err
		}
		return fieldtrack.NewRectilinearSGrid(lon, lat, depth, timeVals, sphereMesh, zonalPeriodic, z4D), nil
	case fieldtrack.CurvilinearZ:
		xdim, ydim := curvilinearDims(f)
		depth, err := readFloats(f, "depth")
		if err != nil {
			return nil, err
		}
		return fieldtrack.NewCurvilinearZGrid(lon, lat, xdim, ydim, depth, timeVals, sphereMesh, zonalPeriodic), nil
	case fieldtrack.CurvilinearS:
		xdim, ydim := curvilinearDims(f)
		depth, err := readDense(f, "depth_s")
		if err != nil {
			return nil, err
		}
		return fieldtrack.NewCurvilinearSGrid(lon, lat, xdim, ydim, depth, timeVals, sphereMesh, zonalPeriodic, z4D), nil
	default:
		return nil, fmt.Errorf("ingest: unknown grid_code %v", code)
	}
}

func curvilinearDims(f *cdf.File) (xdim, ydim int32) {
	dims := f.Header.Lengths("lon")
	return int32(dims[1]), int32(dims[0])
}

func readBoolAttr(f *cdf.File, name string) bool {
	v, ok := f.Header.GetAttribute("", name).([]int32)
	return ok && len(v) > 0 && v[0] != 0
}

// readFloats reads a 1D NetCDF variable, the same pattern
// vargrid.go's LoadCTMData uses for every CTM variable (read float32,
// widen to float64).
func readFloats(f *cdf.File, name string) ([]float64, error) {
	dims := f.Header.Lengths(name)
	n := 1
	for _, d := range dims {
		n *= d
	}
	tmp := make([]float32, n)
	r := f.Reader(name, nil, nil)
	if _, err := r.Read(tmp); err != nil {
		return nil, fmt.Errorf("reading %s: %v", name, err)
	}
	out := make([]float64, n)
	for i, v := range tmp {
		out[i] = float64(v)
	}
	return out, nil
}

// readDense reads an n-dimensional NetCDF variable into a
// *sparse.DenseArray, identical to the read loop in vargrid.go's
// LoadCTMData.
func readDense(f *cdf.File, name string) (*sparse.DenseArray, error) {
	dims := f.Header.Lengths(name)
	d := sparse.ZerosDense(dims...)
	tmp := make([]float32, len(d.Elements))
	r := f.Reader(name, nil, nil)
	if _, err := r.Read(tmp); err != nil {
		return nil, fmt.Errorf("reading %s: %v", name, err)
	}
	for i, v := range tmp {
		d.Elements[i] = float64(v)
	}
	return d, nil
}
