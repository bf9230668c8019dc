package correlations

import "github.com/san-kum/pvtlab/internal/pvt"

// OilDensityBasic: rho_o = (350 Yo + 0.0764 Yg Rs) / (5.615 Bo).
type OilDensityBasic struct{ base }

func NewOilDensityBasic() *OilDensityBasic {
	return &OilDensityBasic{base{
		id:   "oil-density-basic",
		name: "Oil Density (Basic)",
		unit: unitDensity,
		params: []pvt.ParameterSpec{
			param("Yo", 0.6, 1.0, 0.01, 0.8, ""),
			param("Yg", 0.55, 1.5, 0.01, 0.7, ""),
			param("Rs", 0, 3000, 10, 200, unitGOR),
			param("Bo", 1.0, 2.0, 0.01, 1.2, unitFVF),
		},
	}}
}

func (c *OilDensityBasic) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Yo", "Yg", "Rs", "Bo")
	if err != nil {
		return pvt.Output{}, err
	}
	yo, yg, rs, bo := v[0], v[1], v[2], v[3]

	k := &calc{id: c.id}
	rho := k.div("Bo", 350*yo+0.0764*yg*rs, 5.615*bo)
	return k.finish(c.unit, rho, nil)
}

// OilDensityPressure: rho_o = rho_ob exp(Co (P - Pb)), valid for P >= Pb.
type OilDensityPressure struct{ base }

func NewOilDensityPressure() *OilDensityPressure {
	return &OilDensityPressure{base{
		id:   "oil-density-pressure",
		name: "Oil Density (At Pressure)",
		unit: unitDensity,
		params: []pvt.ParameterSpec{
			param("rho_ob", 30, 60, 0.1, 45, unitDensity),
			param("Co", 1e-7, 1e-3, 1e-7, 1e-6, unitCompr),
			param("Pb", 50, 6000, 10, 2000, unitPsia),
			param("P", 50, 10000, 10, 3000, unitPsia),
		},
	}}
}

func (c *OilDensityPressure) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "rho_ob", "Co", "Pb", "P")
	if err != nil {
		return pvt.Output{}, err
	}
	rhoOb, co, pb, p := v[0], v[1], v[2], v[3]

	if p < pb {
		return pvt.Output{}, pvt.Fail(c.id, pvt.ErrDomainInvalid, "P", p)
	}
	k := &calc{id: c.id}
	rho := rhoOb * k.exp("Co*(P-Pb)", co*(p-pb))
	return k.finish(c.unit, rho, nil)
}

// OilGravityAPI converts API gravity to specific gravity.
type OilGravityAPI struct{ base }

func NewOilGravityAPI() *OilGravityAPI {
	return &OilGravityAPI{base{
		id:     "oil-gravity-api",
		name:   "Oil Specific Gravity from API",
		params: []pvt.ParameterSpec{param("Yapi", 10, 60, 0.1, 30, unitAPI)},
	}}
}

func (c *OilGravityAPI) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	api, err := s.Lookup(c.id, "Yapi")
	if err != nil {
		return pvt.Output{}, err
	}
	k := &calc{id: c.id}
	return k.finish(c.unit, k.div("Yapi", 141.5, 131.5+api), nil)
}
