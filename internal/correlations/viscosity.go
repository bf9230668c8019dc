package correlations

import "github.com/san-kum/pvtlab/internal/pvt"

// BeggsRobinsonMu returns saturated oil viscosity from the dead-oil value.
// Extras: mu_od, A, B.
type BeggsRobinsonMu struct{ base }

func NewBeggsRobinsonMu() *BeggsRobinsonMu {
	return &BeggsRobinsonMu{base{
		id:   "beggs-robinson-mu",
		name: "Beggs & Robinson Viscosity",
		unit: unitVisc,
		params: []pvt.ParameterSpec{
			param("Rsb", 20, 2070, 10, 500, unitGOR),
			param("T", 70, 295, 1, 180, unitTemp),
			param("Yapi", 16, 58, 0.1, 30, unitAPI),
		},
		extras: []string{"mu_od", "A", "B"},
	}}
}

func (c *BeggsRobinsonMu) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Rsb", "T", "Yapi")
	if err != nil {
		return pvt.Output{}, err
	}
	rsb, t, api := v[0], v[1], v[2]

	k := &calc{id: c.id}
	x := k.pow("T", t, -1.163) * k.exp("6.9824-0.04658*API", 6.9824-0.04658*api)
	muOd := k.pow("x", 10, x) - 1.0
	a := 10.715 * k.pow("Rsb+100", rsb+100, -0.515)
	b := 5.44 * k.pow("Rsb+150", rsb+150, -0.338)
	muOs := a * k.pow("mu_od", muOd, b)

	return k.finish(c.unit, muOs, map[string]float64{"mu_od": muOd, "A": a, "B": b})
}

// VasquezBeggsMu: mu_o = mu_ob (p/pb)^m, m = 2.6 p^1.187 exp(-11.513 - 8.98e-5 p).
type VasquezBeggsMu struct{ base }

func NewVasquezBeggsMu() *VasquezBeggsMu {
	return &VasquezBeggsMu{base{
		id:   "vasquez-beggs-mu",
		name: "Vasquez & Beggs Undersaturated Viscosity",
		unit: unitVisc,
		params: []pvt.ParameterSpec{
			param("mu_ob", 0.1, 100, 0.1, 1.0, unitVisc),
			param("p", 50, 10000, 10, 3000, unitPsia),
			param("pb", 50, 6000, 10, 2000, unitPsia),
		},
		extras: []string{"m"},
	}}
}

func (c *VasquezBeggsMu) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "mu_ob", "p", "pb")
	if err != nil {
		return pvt.Output{}, err
	}
	muOb, p, pb := v[0], v[1], v[2]

	k := &calc{id: c.id}
	m := 2.6 * k.pow("p", p, 1.187) * k.exp("-11.513-8.98e-5*p", -11.513-8.98e-5*p)
	muO := muOb * k.pow("p/pb", k.div("pb", p, pb), m)
	return k.finish(c.unit, muO, map[string]float64{"m": m})
}
