package correlations

import "github.com/san-kum/pvtlab/internal/pvt"

// Applicability limits of the bubble point correlations.
const (
	lasaterYgMin = 0.574
	lasaterYgMax = 1.223
	lasaterPbMin = 48.0
	lasaterPbMax = 5780.0
	vbPbMin      = 50.0
	vbPbMax      = 5250.0
)

// StandingPb: Pb = 18 (Rsb/Yg)^0.83 10^(0.00091 Tr - 0.0125 API).
type StandingPb struct{ base }

func NewStandingPb() *StandingPb {
	return &StandingPb{base{
		id:   "standing-pb",
		name: "Standing Bubble Point",
		unit: unitPsia,
		params: []pvt.ParameterSpec{
			param("Rsb", 20, 2000, 10, 500, unitGOR),
			param("Yg", 0.55, 1.5, 0.01, 0.7, ""),
			param("Tr", 70, 300, 1, 180, unitTemp),
			param("Yapi", 10, 60, 0.1, 30, unitAPI),
		},
	}}
}

func (c *StandingPb) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Rsb", "Yg", "Tr", "Yapi")
	if err != nil {
		return pvt.Output{}, err
	}
	rsb, yg, tr, api := v[0], v[1], v[2], v[3]

	k := &calc{id: c.id}
	a := 0.00091*tr - 0.0125*api
	pb := 18 * k.pow("Rsb/Yg", k.div("Yg", rsb, yg), 0.83) * k.pow("a", 10, a)
	return k.finish(c.unit, pb, nil)
}

// LasaterPb derives gas gravity from Rsb and oil gravity, then the bubble
// point from the Lasater factor. Extras: Mo, Yo, Yg.
type LasaterPb struct{ base }

func NewLasaterPb() *LasaterPb {
	return &LasaterPb{base{
		id:   "lasater-pb",
		name: "Lasater Bubble Point",
		unit: unitPsia,
		params: []pvt.ParameterSpec{
			param("Yapi", 17.9, 51.1, 0.1, 30, unitAPI),
			param("Rsb", 3, 2905, 10, 500, unitGOR),
			param("Tr", 82, 272, 1, 150, unitTemp),
		},
		extras: []string{"Mo", "Yo", "Yg"},
	}}
}

func (c *LasaterPb) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Yapi", "Rsb", "Tr")
	if err != nil {
		return pvt.Output{}, err
	}
	api, rsb, tr := v[0], v[1], v[2]

	k := &calc{id: c.id}
	var mo float64
	if api <= 40 {
		mo = 630 - 10*api
	} else {
		mo = 73.110 * k.pow("Yapi", api, -1.562)
	}
	yo := k.div("Yapi", 141.5, 131.5+api)
	moles := rsb / 379.3
	yg := k.div("Yg", moles, moles+k.div("Mo", 350*yo, mo))
	k.within("Yg", yg, lasaterYgMin, lasaterYgMax)

	var pb float64
	if yg <= 0.6 {
		pb = (0.679*k.exp("2.786*Yg", 2.786*yg) - 0.323) * k.div("Yg", tr, yg)
	} else {
		pb = (8.26*k.pow("Yg", yg, 3.56) + 1.95) * k.div("Yg", tr, yg)
	}
	k.within("Pb", pb, lasaterPbMin, lasaterPbMax)

	return k.finish(c.unit, pb, map[string]float64{"Mo": mo, "Yo": yo, "Yg": yg})
}

// VasquezBeggsPb inverts the Vasquez-Beggs Rs correlation at Rsb. The
// separator-corrected gas gravity Ygc is reported as an extra.
type VasquezBeggsPb struct{ base }

func NewVasquezBeggsPb() *VasquezBeggsPb {
	return &VasquezBeggsPb{base{
		id:   "vasquez-beggs-pb",
		name: "Vasquez & Beggs Bubble Point",
		unit: unitPsia,
		params: []pvt.ParameterSpec{
			param("Yg", 0.56, 1.18, 0.01, 0.8, ""),
			param("Ts", 70, 295, 1, 120, unitTemp),
			param("Ps", 15, 1000, 1, 100, "psi"),
			param("Yapi", 16, 58, 0.1, 30, unitAPI),
			param("Rsb", 20, 2070, 10, 500, unitGOR),
			param("Tr", 70, 295, 1, 180, unitTemp),
		},
		extras: []string{"Ygc"},
	}}
}

func (c *VasquezBeggsPb) Evaluate(s pvt.Snapshot) (pvt.Output, error) {
	v, err := c.read(s, "Yg", "Ts", "Ps", "Yapi", "Rsb", "Tr")
	if err != nil {
		return pvt.Output{}, err
	}
	yg, ts, ps, api, rsb, tr := v[0], v[1], v[2], v[3], v[4], v[5]

	k := &calc{id: c.id}
	ygc := yg * (1 + 5.912e-5*api*ts*k.log("Ps/114.7", ps/114.7))
	if k.err != nil {
		return pvt.Output{}, k.err
	}

	c1, c2, c3 := vbCoefficients(api)
	den := c1 * yg * k.exp("C3*API/(Tr+460)", k.div("Tr", c3*api, tr+460))
	pb := k.pow("Rsb/den", k.div("den", rsb, den), 1/c2)
	k.within("Pb", pb, vbPbMin, vbPbMax)

	return k.finish(c.unit, pb, map[string]float64{"Ygc": ygc})
}
