package quad_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simpson/internal/equations"
	"github.com/san-kum/simpson/internal/quad"
)

var _ = Describe("Integrating registered equations", func() {
	var (
		reg   *equations.Registry
		integ *quad.Integrator
		est   *quad.Estimator
	)

	BeforeEach(func() {
		reg = equations.Default()
		integ = quad.NewIntegrator()
		est = quad.NewEstimator(integ)
	})

	calculate := func(id int, lower, upper float64, n int) quad.Result {
		eq, err := reg.Get(id)
		Expect(err).NotTo(HaveOccurred())
		res, err := integ.Calculate(eq.Function(), lower, upper, n, quad.WithSingularities(reg.Singularities(id)))
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	DescribeTable("is exact for low-degree polynomials",
		func(id int, n int, want float64) {
			res := calculate(id, 0, 1, n)
			Expect(res.Resolved).To(BeTrue())
			Expect(res.Value).To(BeNumerically("~", want, 1e-14))
		},
		Entry("x, n=2", 5, 2, 0.5),
		Entry("x, n=10", 5, 10, 0.5),
		Entry("x, n=256", 5, 256, 0.5),
		Entry("x³, n=2", 6, 2, 0.25),
		Entry("x³, n=30", 6, 30, 0.25),
	)

	It("rejects unknown equation ids for any bounds", func() {
		for _, id := range []int{0, -1, 7, 42} {
			_, err := reg.Get(id)
			Expect(err).To(MatchError(equations.ErrUnknownEquation))

			_, err = reg.Evaluate(1, id)
			Expect(err).To(MatchError(equations.ErrUnknownEquation))
		}
	})

	It("reports 1/x across zero as an unresolved asymptote", func() {
		res := calculate(2, -1, 1, 10)
		Expect(res.Resolved).To(BeFalse())
		Expect(res.Discontinuities).To(HaveLen(1))
		Expect(res.Discontinuities[0].X).To(BeZero())
		Expect(res.Discontinuities[0].Kind).To(Equal(quad.Asymptotic))
		Expect(res.Discontinuities[0].Fixable).To(BeFalse())
	})

	It("repairs sin(x)/x at an interior node", func() {
		eq, _ := reg.Get(3)
		res := calculate(3, -math.Pi, math.Pi, 8)
		Expect(res.Resolved).To(BeTrue())
		Expect(res.Discontinuities).To(HaveLen(1))

		d := res.Discontinuities[0]
		Expect(d.Kind).To(Equal(quad.Removable))
		Expect(d.Value).To(Equal((eq.Eval(d.Left) + eq.Eval(d.Right)) / 2))
	})

	It("repairs the removable point of equation 4 but not its asymptote", func() {
		res := calculate(4, 0, 4, 4)
		Expect(res.Resolved).To(BeTrue())
		Expect(res.Discontinuities).To(HaveLen(1))
		Expect(res.Discontinuities[0].X).To(Equal(2.0))

		res = calculate(4, -3, 1, 4)
		Expect(res.Resolved).To(BeFalse())
		Expect(res.Discontinuities[0].X).To(Equal(-2.0))
	})

	It("returns bit-identical results on repeated calls", func() {
		a := calculate(1, 0, math.Pi, 40)
		b := calculate(1, 0, math.Pi, 40)
		Expect(math.Float64bits(a.Value)).To(Equal(math.Float64bits(b.Value)))
	})

	It("shrinks the Runge error about sixteenfold per doubling", func() {
		eq, _ := reg.Get(1)
		prev := 0.0
		for _, n := range []int{8, 16, 32} {
			e, err := est.Runge(eq.Function(), 0, math.Pi, n)
			Expect(err).NotTo(HaveOccurred())
			if prev > 0 {
				Expect(prev / e).To(BeNumerically("~", 16, 3))
			}
			prev = e
		}
	})

	It("evaluates the analytic bound at the upper limit", func() {
		eq, _ := reg.Get(1)
		got, err := est.Analytic(eq.Function(), 0, math.Pi, 10)
		Expect(err).NotTo(HaveOccurred())

		k, _ := reg.EvaluateFourthDerivative(math.Pi, 1)
		Expect(got).To(BeNumerically("~", math.Abs(k*math.Pi/(180*1e4)), 1e-18))
	})
})
