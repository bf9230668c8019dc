package correlations

import "github.com/san-kum/pvtlab/internal/pvt"

// StandingBo: Bo = 0.972 + 0.000147 F^1.175, F = Rs sqrt(Yg/Yo) + 1.25 T.
type StandingBo struct{ base }

func NewStandingBo() *StandingBo {
	return &StandingBo{base{
		id:   "standing-bo",
		name: "Standing FVF",
		unit: unitFVF,
		params: []pvt.ParameterSpec{
			param("Rs", 0, 3000, 10, 500, unitGOR),
			param("Yg", 0.55, 1.5, 0.01, 0.7, ""),
			param("Yo", 0.6, 1.0, 0.01, 0.85, ""),
			param("T", 70, 300, 1, 180, unitTemp),
		},
		extras: []string{"F"},
	}}
}

func (c *StandingBo) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Rs", "Yg", "Yo", "T")
	if err != nil {
		return pvt.Output{}, err
	}
	rs, yg, yo, t := v[0], v[1], v[2], v[3]

	k := &calc{id: c.id}
	f := rs*k.pow("Yg/Yo", k.div("Yo", yg, yo), 0.5) + 1.25*t
	bo := 0.972 + 0.000147*k.pow("F", f, 1.175)
	return k.finish(c.unit, bo, map[string]float64{"F": f})
}

// VasquezBeggsBo uses the corrected gas gravity Ygc directly as an input.
type VasquezBeggsBo struct{ base }

func NewVasquezBeggsBo() *VasquezBeggsBo {
	return &VasquezBeggsBo{base{
		id:   "vasquez-beggs-bo",
		name: "Vasquez & Beggs FVF",
		unit: unitFVF,
		params: []pvt.ParameterSpec{
			param("Rs", 20, 2070, 10, 500, unitGOR),
			param("T", 70, 295, 1, 180, unitTemp),
			param("Yapi", 16, 58, 0.1, 30, unitAPI),
			param("Ygc", 0.55, 1.5, 0.01, 0.8, ""),
		},
	}}
}

func (c *VasquezBeggsBo) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Rs", "T", "Yapi", "Ygc")
	if err != nil {
		return pvt.Output{}, err
	}
	rs, t, api, ygc := v[0], v[1], v[2], v[3]

	c1, c2, c3 := 0.000467, 0.000011, 0.000000001337
	if api <= 30 {
		c1, c2, c3 = 0.0004677, 0.00001751, -0.00000001811
	}
	k := &calc{id: c.id}
	g := (t - 60) * k.div("Ygc", api, ygc)
	bo := 1 + c1*rs + c2*g + c3*rs*g
	return k.finish(c.unit, bo, nil)
}

// OilBo: Bo = Bob exp(co (Pb - p)) above the bubble point.
type OilBo struct{ base }

func NewOilBo() *OilBo {
	return &OilBo{base{
		id:   "oil-bo",
		name: "Oil FVF (General)",
		unit: unitFVF,
		params: []pvt.ParameterSpec{
			param("Bob", 1.0, 2.0, 0.01, 1.2, unitFVF),
			param("Pb", 50, 6000, 10, 2000, unitPsia),
			param("p", 50, 10000, 10, 3000, unitPsia),
			param("co", 1e-7, 1e-3, 1e-7, 1e-6, unitCompr),
		},
	}}
}

func (c *OilBo) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Bob", "Pb", "p", "co")
	if err != nil {
		return pvt.Output{}, err
	}
	bob, pb, p, co := v[0], v[1], v[2], v[3]

	k := &calc{id: c.id}
	bo := bob * k.exp("co*(Pb-p)", co*(pb-p))
	return k.finish(c.unit, bo, nil)
}

// VasquezBeggsCo: co = (5 Rsb + 17.2 T - 1180 Yg + 12.61 API - 1433) / (1e5 p).
type VasquezBeggsCo struct{ base }

func NewVasquezBeggsCo() *VasquezBeggsCo {
	return &VasquezBeggsCo{base{
		id:   "vasquez-beggs-co",
		name: "Vasquez & Beggs Compressibility",
		unit: unitCompr,
		params: []pvt.ParameterSpec{
			param("Rsb", 20, 2070, 10, 500, unitGOR),
			param("T", 70, 295, 1, 180, unitTemp),
			param("Yg", 0.55, 1.5, 0.01, 0.7, ""),
			param("Yapi", 16, 58, 0.1, 30, unitAPI),
			param("p", 50, 10000, 10, 2000, unitPsia),
		},
	}}
}

func (c *VasquezBeggsCo) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Rsb", "T", "Yg", "Yapi", "p")
	if err != nil {
		return pvt.Output{}, err
	}
	rsb, t, yg, api, p := v[0], v[1], v[2], v[3], v[4]

	k := &calc{id: c.id}
	co := k.div("p", 5*rsb+17.2*t-1180*yg+12.61*api-1433, p*1e5)
	return k.finish(c.unit, co, nil)
}
