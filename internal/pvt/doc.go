// Package pvt defines the contract shared by every oil/gas PVT correlation.
//
// A correlation is a pure function from a [Snapshot] of named inputs to an
// [Output] record:
//
//   - [ParameterSpec]: one scalar input with its range, step, default and unit
//   - [Correlation]: ordered inputs, declared extras and Evaluate
//   - [Snapshot]: parameter name to value mapping for one evaluation
//   - [Value]: a float that may be absent
//
// # Errors
//
// Evaluation failures are reported with the sentinels in errors.go and are
// classified with [KindOf]. Overflow and division by zero both satisfy
// errors.Is(err, [ErrMathUndefined]).
//
// # Example
//
//	c := correlations.NewOilDensityBasic()
//	out, err := c.Evaluate(pvt.Defaults(c))
//	if err != nil {
//	    fmt.Println(pvt.KindOf(err), err)
//	}
package pvt
