// Package correlations implements the sixteen oil/gas PVT correlations.
//
// Every type implements [pvt.Correlation] and is stateless; a single value
// may be evaluated any number of times. Validity checks published with a
// correlation are applied inside Evaluate and reported as
// [pvt.ErrDomainInvalid]; math failures surface as [pvt.ErrMathUndefined].
//
// Correlations are looked up by id through a [Catalog]:
//
//	cat := correlations.NewCatalog()
//	c, err := cat.Get("vasquez-beggs-pb")
package correlations
