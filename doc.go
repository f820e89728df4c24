// Package fieldtrack samples a time-varying scalar or vector field defined
// on a structured ocean or atmosphere grid at an arbitrary (x, y, z, t)
// point. It is the field-sampling core of a Lagrangian particle tracker:
// callers advect particles externally and ask this package for the field
// value at each particle's current position and time.
//
// Four grid topologies are supported (rectilinear or curvilinear
// horizontal mesh, crossed with depth-aligned Z or terrain-following S
// vertical coordinates), with optional spherical longitude wrap. Space is
// interpolated bilinearly/trilinearly or by nearest neighbor; time is
// always interpolated linearly between the two bracketing samples, with
// support for periodic time axes and an explicit extrapolation policy.
//
// Grid and field data are immutable, read-only borrows for the duration
// of a query. The only mutable state is the per-particle warm-start
// Cursor, which the caller owns and threads through successive calls.
package fieldtrack
