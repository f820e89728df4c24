// The cell-indexing approach in this file (an rtree over cell-center
// geometry) is adapted from InMAP's vargrid.go (makeCTMgrid), copyright
// © 2013 the InMAP authors, licensed under the GNU General Public
// License v3 or later. See <http://www.gnu.org/licenses/>.

package ingest

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/spatialfield/fieldtrack"
)

// cellCenter is the rtree entry for one curvilinear cell center,
// mirroring vargrid.go's gridCellLight: a tiny wrapper embedding
// geom.Polygonal (here a zero-area point polygon, since the index
// only ever needs a center, not a cell footprint) alongside the
// integer cell index the caller actually wants.
type cellCenter struct {
	geom.Polygonal
	X, Y   float64
	Xi, Yi int32
}

func newCellCenter(x, y float64, xi, yi int32) *cellCenter {
	return &cellCenter{
		Polygonal: geom.Polygon{[]geom.Point{{X: x, Y: y}, {X: x, Y: y}, {X: x, Y: y}}},
		X:         x,
		Y:         y,
		Xi:        xi,
		Yi:        yi,
	}
}

// CellIndex is a spatial index of a curvilinear grid's cell centers,
// built once and reused to bootstrap a warm-start Cursor for a
// caller's first query. The sampler itself never needs this: it
// converges from any cursor (including a zeroed one), but a fast
// first guess avoids the locator's full iterative walk on a very
// large mesh.
type CellIndex struct {
	tree *rtree.Rtree
}

// BuildCellIndex indexes every cell center of a curvilinear grid's
// mesh. Grounded on vargrid.go's makeCTMgrid, which builds an
// equivalent rtree over CTM grid cell polygons.
func BuildCellIndex(g *fieldtrack.Grid) *CellIndex {
	node := func(lon []float64, xi, yi int32) float64 {
		return lon[int(yi)*int(g.Xdim)+int(xi)]
	}
	tree := rtree.NewTree(25, 50)
	for yi := int32(0); yi < g.Ydim-1; yi++ {
		for xi := int32(0); xi < g.Xdim-1; xi++ {
			cx := (node(g.Lon, xi, yi) + node(g.Lon, xi+1, yi) + node(g.Lon, xi+1, yi+1) + node(g.Lon, xi, yi+1)) / 4
			cy := (node(g.Lat, xi, yi) + node(g.Lat, xi+1, yi) + node(g.Lat, xi+1, yi+1) + node(g.Lat, xi, yi+1)) / 4
			tree.Insert(newCellCenter(cx, cy, xi, yi))
		}
	}
	return &CellIndex{tree: tree}
}

// Nearest reports the cell index whose center is closest to (x, y), to
// use as a warm-start Cursor. Only centers within 5 units of (x, y) in
// each axis are considered; when there is none, it returns a zeroed
// Cursor.
func (idx *CellIndex) Nearest(x, y float64) fieldtrack.Cursor {
	const searchRadius = 5.0
	box := geom.Polygon{[]geom.Point{
		{X: x - searchRadius, Y: y - searchRadius},
		{X: x + searchRadius, Y: y - searchRadius},
		{X: x + searchRadius, Y: y + searchRadius},
		{X: x - searchRadius, Y: y + searchRadius},
		{X: x - searchRadius, Y: y - searchRadius},
	}}

	var best *cellCenter
	bestDist := math.Inf(1)
	for _, c := range idx.tree.SearchIntersect(box.Bounds()) {
		cc := c.(*cellCenter)
		d := math.Hypot(cc.X-x, cc.Y-y)
		if d < bestDist {
			bestDist = d
			best = cc
		}
	}
	if best == nil {
		return fieldtrack.Cursor{}
	}
	return fieldtrack.Cursor{Xi: best.Xi, Yi: best.Yi}
}
