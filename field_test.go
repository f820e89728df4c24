package fieldtrack

import (
	"math"
	"testing"

	"bitbucket.org/ctessum/sparse"
)

const testTolerance = 1.e-6

func different(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance
}

// rectilinearZGrid2D builds a 3x3 rectilinear-Z grid with a single
// vertical level and a single time step, matching scenario 1 in
// spec.md §8.
func rectilinearZGrid2D() (*Grid, *Field) {
	lon := []float64{0, 1, 2}
	lat := []float64{0, 1, 2}
	depth := []float64{0}
	time := []float64{0}
	g := NewRectilinearZGrid(lon, lat, depth, time, false, false)

	data := sparse.ZerosDense(1, 1, 3, 3)
	for yi := 0; yi < 3; yi++ {
		for xi := 0; xi < 3; xi++ {
			data.Set(float64(xi)+2*float64(yi), 0, 0, yi, xi)
		}
	}
	f := NewField(g, data, false, false)
	return g, f
}

// affineField builds a rectilinear-Z grid/field pair whose data is the
// affine function f(x,y,z,t) = a*x + b*y + c*z + d*t, sampled exactly
// at every grid node. Bilinear/trilinear interpolation reproduces an
// affine function exactly at any interior point, so this lets
// TestAffineFieldExactness pin spec.md §8 property 1 without relying
// on the scenario tests to exercise it only incidentally.
func affineField(zdim, tdim int, a, b, c, d float64) (*Grid, *Field) {
	lon := []float64{0, 1, 2, 3}
	lat := []float64{0, 1, 2, 3}
	depth := make([]float64, zdim)
	for k := range depth {
		depth[k] = float64(k)
	}
	time := make([]float64, tdim)
	for i := range time {
		time[i] = float64(i)
	}
	g := NewRectilinearZGrid(lon, lat, depth, time, false, false)

	data := sparse.ZerosDense(tdim, zdim, 4, 4)
	for ti := 0; ti < tdim; ti++ {
		for zi := 0; zi < zdim; zi++ {
			for yi := 0; yi < 4; yi++ {
				for xi := 0; xi < 4; xi++ {
					v := a*lon[xi] + b*lat[yi] + c*depth[zi] + d*time[ti]
					data.Set(v, ti, zi, yi, xi)
				}
			}
		}
	}
	f := NewField(g, data, false, false)
	return g, f
}

// TestAffineFieldExactness pins spec.md §8 property 1: LINEAR queries
// on an affine field must reproduce the affine function exactly (to
// float64 rounding), both through the 2D bilinear path (zdim=1) and,
// directly, through the 3D trilinear path (zdim>1).
func TestAffineFieldExactness(t *testing.T) {
	const a, b, c, d = 1.3, -0.7, 2.1, 0.5

	t.Run("bilinear", func(t *testing.T) {
		_, f := affineField(1, 1, a, b, 0, 0)
		var cur Cursor
		const x, y = 2.25, 0.6
		got, err := TemporalInterpolation(f, x, y, 0, 0, &cur, Linear)
		if err != nil {
			t.Fatal(err)
		}
		want := a*x + b*y
		if different(got, want, testTolerance) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("trilinear", func(t *testing.T) {
		_, f := affineField(3, 1, a, b, c, 0)
		var cur Cursor
		const x, y, z = 1.75, 2.4, 1.1
		got, err := TemporalInterpolation(f, x, y, z, 0, &cur, Linear)
		if err != nil {
			t.Fatal(err)
		}
		want := a*x + b*y + c*z
		if different(got, want, testTolerance) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("trilinear with time blend", func(t *testing.T) {
		_, f := affineField(3, 2, a, b, c, d)
		var cur Cursor
		const x, y, z, tq = 1.75, 2.4, 1.1, 0.6
		got, err := TemporalInterpolation(f, x, y, z, tq, &cur, Linear)
		if err != nil {
			t.Fatal(err)
		}
		want := a*x + b*y + c*z + d*tq
		if different(got, want, testTolerance) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestScenarioRectilinearLinear(t *testing.T) {
	_, f := rectilinearZGrid2D()
	var cur Cursor
	got, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &cur, Linear)
	if err != nil {
		t.Fatal(err)
	}
	if different(got, 1.5, testTolerance) {
		t.Errorf("got %v, want 1.5", got)
	}
}

func TestScenarioRectilinearNearest(t *testing.T) {
	_, f := rectilinearZGrid2D()
	var cur Cursor
	got, err := TemporalInterpolation(f, 0.4, 0.6, 0, 0, &cur, Nearest)
	if err != nil {
		t.Fatal(err)
	}
	const want = 2 // data[0][0][1][0]: eta>=0.5 rounds up, xsi<0.5 stays
	if different(got, want, testTolerance) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScenarioTimeInterpolation(t *testing.T) {
	lon := []float64{0, 1, 2}
	lat := []float64{0, 1, 2}
	depth := []float64{0}
	time := []float64{0, 10}
	g := NewRectilinearZGrid(lon, lat, depth, time, false, false)

	data := sparse.ZerosDense(2, 1, 3, 3)
	for yi := 0; yi < 3; yi++ {
		for xi := 0; xi < 3; xi++ {
			data.Set(0, 0, 0, yi, xi)
			data.Set(1, 1, 0, yi, xi)
		}
	}
	f := NewField(g, data, false, false)

	var cur Cursor
	got, err := TemporalInterpolation(f, 0.5, 0.5, 0, 2.5, &cur, Linear)
	if err != nil {
		t.Fatal(err)
	}
	if different(got, 0.25, testTolerance) {
		t.Errorf("got %v, want 0.25", got)
	}
}

func TestScenarioCurvilinearDegenerate(t *testing.T) {
	// A 2x2 curvilinear mesh whose one cell is the rectilinear square
	// (0,0)-(2,0)-(2,2)-(0,2): a = [0,2,0,0], so |A| = |a3*b2-a2*b3| = 0
	// and the linear (|A|<1e-12) fallback is exercised.
	lon := []float64{0, 2, 0, 2}
	lat := []float64{0, 0, 2, 2}
	g := NewCurvilinearZGrid(lon, lat, 2, 2, []float64{0}, []float64{0}, false, false)
	data := sparse.ZerosDense(1, 1, 2, 2)
	f := NewField(g, data, false, false)

	var cur Cursor
	_, err := TemporalInterpolation(f, 1.2, 0.8, 0, 0, &cur, Linear)
	if err != nil {
		t.Fatal(err)
	}
	xsi, eta, _, err := locateIndices(g, 1.2, 0.8, 0, 0, 0, 0, 1, &Cursor{})
	if err != nil {
		t.Fatal(err)
	}
	if different(xsi, 0.6, testTolerance) {
		t.Errorf("xsi = %v, want 0.6", xsi)
	}
	if different(eta, 0.4, testTolerance) {
		t.Errorf("eta = %v, want 0.4", eta)
	}
}

func TestIdempotence(t *testing.T) {
	_, f := rectilinearZGrid2D()
	var cur Cursor
	got1, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &cur, Linear)
	if err != nil {
		t.Fatal(err)
	}
	curAfter := cur
	got2, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &cur, Linear)
	if err != nil {
		t.Fatal(err)
	}
	if got1 != got2 {
		t.Errorf("idempotence violated: %v != %v", got1, got2)
	}
	if cur != curAfter {
		t.Errorf("cursor changed on repeat query: %v != %v", cur, curAfter)
	}
}

func TestWarmStartIrrelevance(t *testing.T) {
	_, f := rectilinearZGrid2D()
	var warm Cursor
	warm.Xi, warm.Yi = 1, 1
	gotWarm, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &warm, Linear)
	if err != nil {
		t.Fatal(err)
	}
	var cold Cursor
	gotCold, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &cold, Linear)
	if err != nil {
		t.Fatal(err)
	}
	if different(gotWarm, gotCold, testTolerance) {
		t.Errorf("warm-start cursor changed result: %v != %v", gotWarm, gotCold)
	}
}

func TestRoundTripXiEta(t *testing.T) {
	g, _ := rectilinearZGrid2D()
	const wantXsi, wantEta = 0.3, 0.7
	x := g.Lon[1] + wantXsi*(g.Lon[2]-g.Lon[1])
	y := g.Lat[1] + wantEta*(g.Lat[2]-g.Lat[1])

	cur := Cursor{Xi: 1, Yi: 1}
	xsi, eta, err := locateHorizontal(g, x, y, &cur)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Xi != 1 || cur.Yi != 1 {
		t.Errorf("cell index = (%d, %d), want (1, 1)", cur.Xi, cur.Yi)
	}
	if different(xsi, wantXsi, 1e-6) {
		t.Errorf("xsi = %v, want %v", xsi, wantXsi)
	}
	if different(eta, wantEta, 1e-6) {
		t.Errorf("eta = %v, want %v", eta, wantEta)
	}
}

func TestSphericalWrap(t *testing.T) {
	lon := []float64{-179, -89, 1, 91, -179}
	lat := []float64{0, 1}
	depth := []float64{0}
	time := []float64{0}
	g := NewRectilinearZGrid(lon, lat, depth, time, true, true)
	data := sparse.ZerosDense(1, 1, 2, 5)
	for yi := 0; yi < 2; yi++ {
		for xi := 0; xi < 5; xi++ {
			data.Set(float64(xi), 0, 0, yi, xi)
		}
	}
	f := NewField(g, data, false, false)

	var cur1, cur2 Cursor
	got1, err := TemporalInterpolation(f, 180, 0, 0, 0, &cur1, Linear)
	if err != nil {
		t.Fatal(err)
	}
	got2, err := TemporalInterpolation(f, -180, 0, 0, 0, &cur2, Linear)
	if err != nil {
		t.Fatal(err)
	}
	if different(got1, got2, testTolerance) {
		t.Errorf("x=180 gave %v, x=-180 gave %v", got1, got2)
	}
}

func TestNearestHalfCellRounding(t *testing.T) {
	_, f := rectilinearZGrid2D()

	var curLeft Cursor
	left, err := TemporalInterpolation(f, 0.5-1e-9, 0.5, 0, 0, &curLeft, Nearest)
	if err != nil {
		t.Fatal(err)
	}
	if different(left, 2, testTolerance) {
		t.Errorf("xsi just below 0.5 rounded up: got %v, want 2 (data[0][0][1][0])", left)
	}

	var curRight Cursor
	right, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &curRight, Nearest)
	if err != nil {
		t.Fatal(err)
	}
	if different(right, 3, testTolerance) {
		t.Errorf("xsi=0.5 rounded down: got %v, want 3 (data[0][0][1][1])", right)
	}
}

func TestVerticalBoundaryExactZ(t *testing.T) {
	g := NewRectilinearZGrid([]float64{0, 1}, []float64{0, 1}, []float64{0, 10, 20}, []float64{0}, false, false)
	data := sparse.ZerosDense(1, 3, 2, 2)
	f := NewField(g, data, false, false)

	var curLo Cursor
	if _, err := TemporalInterpolation(f, 0.5, 0.5, 0, 0, &curLo, Linear); err != nil {
		t.Fatal(err)
	}
	var curHi Cursor
	if _, err := TemporalInterpolation(f, 0.5, 0.5, 20, 0, &curHi, Linear); err != nil {
		t.Fatal(err)
	}
}

func TestTimeExactLastSampleSingleSampleBranch(t *testing.T) {
	g := NewRectilinearZGrid([]float64{0, 1, 2}, []float64{0, 1, 2}, []float64{0}, []float64{0, 10}, false, false)
	data := sparse.ZerosDense(2, 1, 3, 3)
	f := NewField(g, data, false, false)

	var cur Cursor
	if _, err := TemporalInterpolation(f, 0.5, 0.5, 0, 10, &cur, Linear); err != nil {
		t.Fatal(err)
	}
	if cur.Ti != 1 {
		t.Errorf("ti = %d, want 1 (single-sample branch at the last time sample)", cur.Ti)
	}
}

func TestOutOfBoundsHorizontal(t *testing.T) {
	_, f := rectilinearZGrid2D()
	var cur Cursor
	_, err := TemporalInterpolation(f, 5, 5, 0, 0, &cur, Linear)
	if !ErrOutOfBounds(err) {
		t.Errorf("got err=%v, want OUT_OF_BOUNDS", err)
	}
}

func TestTimeExtrapolationDisallowed(t *testing.T) {
	g := NewRectilinearZGrid([]float64{0, 1, 2}, []float64{0, 1, 2}, []float64{0}, []float64{0, 10}, false, false)
	data := sparse.ZerosDense(2, 1, 3, 3)
	f := NewField(g, data, false, false)

	var cur Cursor
	_, err := TemporalInterpolation(f, 0.5, 0.5, 0, 20, &cur, Linear)
	if !ErrTimeExtrapolation(err) {
		t.Errorf("got err=%v, want TIME_EXTRAPOLATION", err)
	}
}
