package correlations

import "github.com/san-kum/pvtlab/internal/pvt"

// StandingRs: Rs = a (p / (18 10^a))^1.204 with a = 0.00091 Tr - 0.0125 API.
type StandingRs struct{ base }

func NewStandingRs() *StandingRs {
	return &StandingRs{base{
		id:   "standing-rs",
		name: "Standing Rs",
		unit: unitGOR,
		params: []pvt.ParameterSpec{
			param("p", 50, 10000, 10, 2000, unitPsia),
			param("Tr", 70, 300, 1, 180, unitTemp),
			param("Yapi", 10, 60, 0.1, 30, unitAPI),
		},
	}}
}

func (c *StandingRs) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "p", "Tr", "Yapi")
	if err != nil {
		return pvt.Output{}, err
	}
	p, tr, api := v[0], v[1], v[2]

	k := &calc{id: c.id}
	a := 0.00091*tr - 0.0125*api
	rs := a * k.pow("p/(18*10^a)", k.div("a", p, 18*k.pow("a", 10, a)), 1.204)
	return k.finish(c.unit, rs, nil)
}

// LasaterRs: Rs = 132755 Yo Yg / (Mo (1 - Yg)).
type LasaterRs struct{ base }

func NewLasaterRs() *LasaterRs {
	return &LasaterRs{base{
		id:   "lasater-rs",
		name: "Lasater Rs",
		unit: unitGOR,
		params: []pvt.ParameterSpec{
			param("Yo", 0.6, 1.0, 0.01, 0.85, ""),
			param("Yg", 0.55, 1.5, 0.01, 0.7, ""),
			param("Mo", 100, 600, 1, 200, "g/mol"),
		},
	}}
}

func (c *LasaterRs) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Yo", "Yg", "Mo")
	if err != nil {
		return pvt.Output{}, err
	}
	yo, yg, mo := v[0], v[1], v[2]

	k := &calc{id: c.id}
	rs := k.div("Mo*(1-Yg)", 132755*yo*yg, mo*(1-yg))
	return k.finish(c.unit, rs, nil)
}

// VasquezBeggsRs: Rs = C1 Yg p^C2 exp(C3 API / (T + 460)).
type VasquezBeggsRs struct{ base }

func NewVasquezBeggsRs() *VasquezBeggsRs {
	return &VasquezBeggsRs{base{
		id:   "vasquez-beggs-rs",
		name: "Vasquez & Beggs Rs",
		unit: unitGOR,
		params: []pvt.ParameterSpec{
			param("Yg", 0.55, 1.5, 0.01, 0.7, ""),
			param("p", 50, 10000, 10, 2000, unitPsia),
			param("Yapi", 10, 60, 0.1, 30, unitAPI),
			param("T", 70, 300, 1, 180, unitTemp),
		},
	}}
}

func (c *VasquezBeggsRs) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Yg", "p", "Yapi", "T")
	if err != nil {
		return pvt.Output{}, err
	}
	yg, p, api, t := v[0], v[1], v[2], v[3]

	k := &calc{id: c.id}
	c1, c2, c3 := vbCoefficients(api)
	rs := c1 * yg * k.pow("p", p, c2) * k.exp("C3*API/(T+460)", k.div("T", c3*api, t+460))
	return k.finish(c.unit, rs, nil)
}
