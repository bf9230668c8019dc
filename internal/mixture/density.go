package mixture

import (
	"math"

	"github.com/san-kum/pvtlab/internal/pvt"
)

const densityID = "mixture-density"

// Density is the mixture density correlation rho = sum(m_i) / sum(m_i/rho_i).
// It declares C and the mass/density inputs of every possible component;
// only components 1..C are read, which ActiveParams reports.
type Density struct {
	params []pvt.ParameterSpec
}

func NewDensity() *Density {
	params := []pvt.ParameterSpec{
		{Name: CountParam, Min: 1, Max: MaxComponents, Step: 1, Default: 2, Unit: "components"},
	}
	for i := 1; i <= MaxComponents; i++ {
		params = append(params,
			pvt.ParameterSpec{Name: MassKey(i), Min: 0.1, Max: 1000, Step: 0.1, Default: DefaultMass, Unit: "lbm"},
			pvt.ParameterSpec{Name: DensityKey(i), Min: 10, Max: 100, Step: 0.1, Default: DefaultDensity, Unit: "lbm/ft³"},
		)
	}
	return &Density{params: params}
}

func (d *Density) ID() string   { return densityID }
func (d *Density) Name() string { return "Mixture Density from Components" }
func (d *Density) Unit() string { return "lbm/ft³" }

func (d *Density) Params() []pvt.ParameterSpec {
	out := make([]pvt.ParameterSpec, len(d.params))
	copy(out, d.params)
	return out
}

// ActiveParams returns C and the inputs of components 1..C. Without a
// usable C every declared parameter is returned.
func (d *Density) ActiveParams(s pvt.Snapshot) []pvt.ParameterSpec {
	cv, ok := s[CountParam]
	count := int(math.Trunc(cv))
	if !ok || count < 1 || count > MaxComponents {
		return d.Params()
	}
	return d.Params()[:1+2*count]
}

func (d *Density) Extras() []string { return []string{"total_mass", "total_volume"} }

// Evaluate truncates C to an integer component count.
func (d *Density) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	cv, err := s.Lookup(densityID, CountParam)
	if err != nil {
		return pvt.Output{}, err
	}
	count := int(math.Trunc(cv))
	if count < 1 || count > MaxComponents {
		return pvt.Output{}, pvt.Fail(densityID, pvt.ErrDomainInvalid, CountParam, cv)
	}

	var missing error
	ex, err := Expand(count, func(i int) (Component, bool) {
		m, err := s.Lookup(densityID, MassKey(i))
		if err != nil && missing == nil {
			missing = err
		}
		rho, err := s.Lookup(densityID, DensityKey(i))
		if err != nil && missing == nil {
			missing = err
		}
		return Component{Mass: m, Density: rho}, true
	})
	if err != nil {
		return pvt.Output{}, err
	}
	if missing != nil {
		return pvt.Output{}, missing
	}
	if err := ex.Err(); err != nil {
		return pvt.Output{}, err
	}
	if !ex.Density.OK {
		return pvt.Output{}, pvt.Fail(densityID, pvt.ErrDivisionByZero, "total_volume", 0)
	}

	extras := map[string]float64{"total_mass": ex.TotalMass, "total_volume": ex.TotalVolume.V}
	return pvt.Output{Result: ex.Density.V, Unit: d.Unit(), Extras: extras}, nil
}
