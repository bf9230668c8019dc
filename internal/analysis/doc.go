// Package analysis runs sensitivity sweeps over PVT correlations.
//
//   - [BuildGrid]: evenly spaced sample points over [min, max]
//   - [Sweep]: evaluates a correlation at every grid point with one input varied
//   - [Run]: builds the grid from the parameter declaration and sweeps it
//   - [Evaluate]: a single live evaluation
//
// # Failure Policy
//
// A grid point whose evaluation fails records [pvt.Absent] for the result and
// every extra, together with the error kind. The point is kept, so a sweep
// always has as many points as its grid. Only contract violations (unknown
// sweep parameter, missing fixed value, bad grid) are returned as errors.
//
// Sweeps are deterministic: the same inputs give identical results.
package analysis
