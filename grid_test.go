package fieldtrack

import "testing"

func TestGridCodeString(t *testing.T) {
	cases := map[GridCode]string{
		RectilinearZ: "rectilinear-Z",
		RectilinearS: "rectilinear-S",
		CurvilinearZ: "curvilinear-Z",
		CurvilinearS: "curvilinear-S",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", code, got, want)
		}
	}
}

func TestRectilinearOutOfBoundsCorner(t *testing.T) {
	g, _ := rectilinearZGrid2D()
	var cur Cursor
	if _, _, err := locateHorizontal(g, -1, 0.5, &cur); !ErrOutOfBounds(err) {
		t.Errorf("x below domain: got %v, want OUT_OF_BOUNDS", err)
	}
	if _, _, err := locateHorizontal(g, 0.5, 3, &cur); !ErrOutOfBounds(err) {
		t.Errorf("y above domain: got %v, want OUT_OF_BOUNDS", err)
	}
}

// TestDescendingAxisQuirk pins the preserved (buggy) behavior of the
// out-of-bounds predicate for a descending, non-periodic spherical
// longitude axis, per SPEC_FULL.md §6: the predicate uses && where ||
// would reject the query, so some out-of-range points that a correct
// predicate would reject are instead admitted to the iterative search.
func TestDescendingAxisQuirk(t *testing.T) {
	// Descending axis: lon0=10 > lonN=-10. x=20 lies outside [-10, 10]
	// on both ends, so the correct (||) predicate would reject it.
	if sphericalXOutOfRange(20, 10, -10) {
		t.Errorf("descending-axis quirk no longer preserved: && predicate rejected x=20, want it admitted")
	}
	// The ascending case still rejects correctly.
	if !sphericalXOutOfRange(20, -10, 10) {
		t.Errorf("ascending-axis predicate should still reject x=20 outside [-10, 10]")
	}
}

func TestCurvilinearOutOfBoundsCorner(t *testing.T) {
	lon := []float64{0, 2, 0, 2}
	lat := []float64{0, 0, 2, 2}
	g := NewCurvilinearZGrid(lon, lat, 2, 2, []float64{0}, []float64{0}, false, false)

	var cur Cursor
	_, _, err := locateHorizontal(g, -5, -5, &cur)
	if !ErrOutOfBounds(err) {
		t.Errorf("lower-left corner escape: got %v, want OUT_OF_BOUNDS", err)
	}
}
