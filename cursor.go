package fieldtrack

// Cursor is the warm-start hint threaded between successive queries for
// one particle and one grid. It is advisory only: a stale cursor is
// corrected by re-convergence, never trusted blindly. All index
// arithmetic uses 32-bit signed integers, matching the original C
// sampler.
//
// The caller owns Cursor values; nothing in this package shares cursor
// storage across goroutines, so concurrent queries must use distinct
// Cursors.
type Cursor struct {
	Xi, Yi, Zi, Ti int32
}

// Reset returns a Cursor with no warm-start information. Starting from
// a zeroed Cursor never changes the result of a query (only its
// convergence speed) — see the warm-start-irrelevance property in the
// package tests.
func (c Cursor) Reset() Cursor {
	return Cursor{}
}
