package experiment_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/chart"
	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/experiment"
	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/pvt"
	"github.com/san-kum/pvtlab/internal/storage"
)

var _ = Describe("Analyzer", func() {
	var (
		ctx   context.Context
		store *storage.MemoryStore
		a     *experiment.Analyzer
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = storage.NewMemoryStore()
		a = experiment.New(correlations.NewCatalog(), store, experiment.DefaultConfig())
	})

	It("refuses to run before a correlation is selected", func() {
		_, err := a.Refresh()
		Expect(err).To(MatchError(experiment.ErrNoSelection))
	})

	It("rejects unknown correlations", func() {
		err := a.Select(ctx, "no-such-thing")
		Expect(errors.Is(err, pvt.ErrUnknownCorrelation)).To(BeTrue())
	})

	Describe("oil density, basic correlation", func() {
		BeforeEach(func() {
			Expect(a.Select(ctx, "oil-density-basic")).To(Succeed())
			Expect(a.Apply(ctx, pvt.Snapshot{"Yo": 0.85, "Yg": 0.7, "Rs": 500, "Bo": 1.2})).To(Succeed())
			Expect(a.SelectParam("Rs")).To(Succeed())
		})

		It("evaluates the live point with its unit", func() {
			out, err := a.Live()
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Result).To(BeNumerically("~", (350*0.85+0.0764*0.7*500)/(5.615*1.2), 1e-9))
			Expect(out.Unit).To(Equal("lbm/ft³"))
		})

		It("sweeps Rs into a strictly increasing series", func() {
			v, err := a.Refresh()
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Result.Points).To(HaveLen(analysis.DefaultPoints))
			Expect(v.Result.AbsentCount()).To(BeZero())

			pts := v.Result.Points
			Expect(pts[0].X).To(Equal(0.0))
			Expect(pts[len(pts)-1].X).To(Equal(3000.0))
			for i := 1; i < len(pts); i++ {
				Expect(pts[i].Result.V).To(BeNumerically(">", pts[i-1].Result.V))
			}
			Expect(pts[0].Result.V).To(BeNumerically("~", 44.1526, 1e-3))
		})

		It("writes committed values to the store", func() {
			v, ok, err := store.Get(ctx, "oil-density-basic", "Rs")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(500.0))
		})

		It("restores stored values when the correlation is selected again", func() {
			Expect(a.Select(ctx, "oil-gravity-api")).To(Succeed())
			Expect(a.Select(ctx, "oil-density-basic")).To(Succeed())
			Expect(a.Inputs()["Rs"]).To(Equal(500.0))
		})

		It("clamps values outside the declared range", func() {
			Expect(a.Set(ctx, "Rs", 99999)).To(Succeed())
			Expect(a.Inputs()["Rs"]).To(Equal(3000.0))
		})

		It("nudges along the step lattice", func() {
			Expect(a.Nudge(ctx, "Rs", 3)).To(Succeed())
			Expect(a.Inputs()["Rs"]).To(BeNumerically("~", 530, 1e-9))
		})

		It("re-projects without re-running the sweep when the chart kind changes", func() {
			first, err := a.Refresh()
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Chart.Kind).To(Equal(chart.Polar))

			next, err := a.NextChart()
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Chart.Kind).To(Equal(chart.Line))
			Expect(next.Result).To(BeIdenticalTo(first.Result))

			for range chart.Kinds[1:] {
				_, err = a.NextChart()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(a.ChartKind()).To(Equal(chart.Polar))
		})

		It("cycles the swept parameter through the declared inputs", func() {
			Expect(a.NextParam()).To(Equal("Bo"))
			Expect(a.NextParam()).To(Equal("Yo"))
		})

		It("rejects unknown parameters", func() {
			Expect(pvt.KindOf(a.Set(ctx, "Zz", 1))).To(Equal(pvt.KindMissingParameter))
			Expect(pvt.KindOf(a.SelectParam("Zz"))).To(Equal(pvt.KindMissingParameter))
		})
	})

	Describe("sweep range override", func() {
		BeforeEach(func() {
			Expect(a.Select(ctx, "oil-density-basic")).To(Succeed())
			Expect(a.SelectParam("Rs")).To(Succeed())
		})

		It("sweeps only the requested interval", func() {
			Expect(a.SetRange(analysis.Range{Min: 500, Max: 1000})).To(Succeed())
			v, err := a.Refresh()
			Expect(err).NotTo(HaveOccurred())
			xs := v.Result.Xs()
			Expect(xs[0]).To(Equal(500.0))
			Expect(xs[len(xs)-1]).To(Equal(1000.0))
		})

		It("rejects intervals outside the declared range", func() {
			Expect(pvt.KindOf(a.SetRange(analysis.Range{Min: -10, Max: 100}))).To(Equal(pvt.KindDomainInvalid))
			Expect(pvt.KindOf(a.SetRange(analysis.Range{Min: 100, Max: 100}))).To(Equal(pvt.KindInvalidGrid))
		})

		It("resets when the swept parameter changes", func() {
			Expect(a.SetRange(analysis.Range{Min: 500, Max: 1000})).To(Succeed())
			Expect(a.SelectParam("Bo")).To(Succeed())
			spec, _ := pvt.FindParam(a.Current(), "Bo")
			Expect(a.Range()).To(Equal(analysis.Range{Min: spec.Min, Max: spec.Max}))
		})
	})

	Describe("Vasquez-Beggs bubble point", func() {
		It("yields an all-absent sweep when the separator pressure is non-positive", func() {
			c, err := correlations.NewCatalog().Get("vasquez-beggs-pb")
			Expect(err).NotTo(HaveOccurred())

			for _, ps := range []float64{0, -14.7} {
				fixed := pvt.Defaults(c).With("Ps", ps)
				res, err := analysis.Run(c, fixed, "Tr", analysis.DefaultPoints)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.AbsentCount()).To(Equal(len(res.Points)))
				for _, p := range res.Points {
					Expect(p.Reason).To(Equal(pvt.KindMathUndefined))
				}
			}
		})
	})

	Describe("live evaluation failures", func() {
		BeforeEach(func() {
			Expect(a.Select(ctx, "oil-density-pressure")).To(Succeed())
			Expect(a.SelectParam("P")).To(Succeed())
		})

		It("keeps the previous view and reports the error", func() {
			good, err := a.Refresh()
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Set(ctx, "P", 100)).To(Succeed())
			v, err := a.Refresh()
			Expect(pvt.KindOf(err)).To(Equal(pvt.KindDomainInvalid))
			Expect(v).To(BeIdenticalTo(good))
			Expect(a.LastError()).To(HaveOccurred())

			Expect(a.Set(ctx, "P", 3000)).To(Succeed())
			_, err = a.Refresh()
			Expect(err).NotTo(HaveOccurred())
			Expect(a.LastError()).NotTo(HaveOccurred())
		})
	})

	Describe("mixture density", func() {
		BeforeEach(func() {
			Expect(a.Select(ctx, "mixture-density")).To(Succeed())
		})

		It("starts from the declared component count", func() {
			Expect(a.Components()).To(HaveLen(2))
			Expect(a.SweepParam()).To(Equal(mixture.CountParam))
		})

		It("computes the three-component example", func() {
			Expect(a.SetComponents(ctx, 3)).To(Succeed())
			Expect(a.Apply(ctx, pvt.Snapshot{
				"mass_1": 10, "mass_2": 20, "mass_3": 30,
				"dens_1": 50, "dens_2": 50, "dens_3": 50,
			})).To(Succeed())

			out, err := a.Live()
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Result).To(BeNumerically("~", 50, 1e-9))
			Expect(out.Extras["total_mass"]).To(BeNumerically("~", 60, 1e-9))
			Expect(out.Extras["total_volume"]).To(BeNumerically("~", 1.2, 1e-9))
		})

		It("drops stale components when the count shrinks", func() {
			Expect(a.SetComponents(ctx, 4)).To(Succeed())
			Expect(a.Set(ctx, "mass_4", 999)).To(Succeed())
			Expect(a.SelectParam("mass_4")).To(Succeed())

			Expect(a.SetComponents(ctx, 2)).To(Succeed())
			Expect(a.Components()).To(HaveLen(2))
			Expect(a.SweepParam()).To(Equal(mixture.CountParam))
			_, ok, err := store.Get(ctx, "mixture-density", "mass_4")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			Expect(a.SetComponents(ctx, 4)).To(Succeed())
			Expect(a.Components()[3].Mass).To(Equal(mixture.DefaultMass))
		})

		It("rejects inactive components and out-of-range counts", func() {
			Expect(pvt.KindOf(a.Set(ctx, "mass_5", 1))).To(Equal(pvt.KindMissingParameter))
			Expect(pvt.KindOf(a.SelectParam("mass_5"))).To(Equal(pvt.KindMissingParameter))
			Expect(pvt.KindOf(a.SetComponents(ctx, 6))).To(Equal(pvt.KindDomainInvalid))
			Expect(pvt.KindOf(a.SetComponents(ctx, 0))).To(Equal(pvt.KindDomainInvalid))
		})

		It("offers only the active components as sweep variables", func() {
			names := []string{}
			for _, p := range a.ActiveParams() {
				names = append(names, p.Name)
			}
			Expect(names).To(Equal([]string{"C", "mass_1", "dens_1", "mass_2", "dens_2"}))
		})

		It("draws radar axes for the active components only", func() {
			Expect(a.SelectParam("mass_1")).To(Succeed())
			_, err := a.SetChart(chart.Radar)
			Expect(err).NotTo(HaveOccurred())
			v, err := a.Refresh()
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Result.Inputs).To(Equal([]string{"C", "mass_1", "dens_1", "mass_2", "dens_2"}))
			Expect(v.Chart.Categories).To(Equal([]string{
				"C", "mass_1", "dens_1", "mass_2", "dens_2", "total_mass", "total_volume", "Result",
			}))
		})

		It("sweeps the component count", func() {
			v, err := a.Refresh()
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Result.Points).To(HaveLen(analysis.DefaultPoints))
			Expect(v.Result.AbsentCount()).To(BeZero())
		})
	})
})
