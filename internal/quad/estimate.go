package quad

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// rungeDenominator is 2^p - 1 for Simpson's order p = 4.
const rungeDenominator = 15.0

type Estimator struct {
	integ *Integrator
}

func NewEstimator(integ *Integrator) *Estimator {
	if integ == nil {
		integ = NewIntegrator()
	}
	return &Estimator{integ: integ}
}

// CoarseIntervals halves n and bumps the result to the next even count
// when the half is odd.
func CoarseIntervals(n int) int {
	h := n / 2
	if h%2 != 0 {
		h++
	}
	return h
}

// Runge estimates the error of the n-interval result by comparing it with
// the result at CoarseIntervals(n). Both runs execute concurrently and
// never notify observers.
func (e *Estimator) Runge(f Function, lower, upper float64, n int, opts ...CallOption) (float64, error) {
	fine, coarse, err := e.pair(f, lower, upper, n, opts)
	if err != nil {
		return 0, err
	}
	if !fine.Resolved || !coarse.Resolved {
		return 0, ErrUnresolved
	}
	return RungeError(fine.Value, coarse.Value), nil
}

// RungeError is |fine - coarse| / 15, where coarse used half the
// subintervals of fine.
func RungeError(fine, coarse float64) float64 {
	return math.Abs(fine-coarse) / rungeDenominator
}

func (e *Estimator) pair(f Function, lower, upper float64, n int, opts []CallOption) (Result, Result, error) {
	if err := Validate(lower, upper, n); err != nil {
		return Result{}, Result{}, err
	}
	opts = append(append([]CallOption(nil), opts...), resultOnly())

	var fine, coarse Result
	var g errgroup.Group
	g.Go(func() error {
		var err error
		fine, err = e.integ.Calculate(f, lower, upper, n, opts...)
		return err
	})
	g.Go(func() error {
		var err error
		coarse, err = e.integ.Calculate(f, lower, upper, CoarseIntervals(n), opts...)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, Result{}, err
	}
	return fine, coarse, nil
}

// Analytic returns |f⁗(upper)·(upper-lower) / (180·n⁴)|.
//
// The derivative is taken at the upper limit only, not maximised over the
// interval, so this is an approximation of the classical bound rather
// than a guaranteed one.
func (e *Estimator) Analytic(f Function, lower, upper float64, n int) (float64, error) {
	if err := Validate(lower, upper, n); err != nil {
		return 0, err
	}
	d, ok := f.(FourthDeriver)
	if !ok {
		return 0, ErrNoFourthDerivative
	}
	k := d.FourthDerivative(upper)
	bound := math.Abs(k * (upper - lower) / (180 * math.Pow(float64(n), 4)))
	if IsDiscontinuous(bound) {
		return 0, fmt.Errorf("%w: f⁗(%g) = %g", ErrAnalyticUndefined, upper, k)
	}
	return bound, nil
}

// Estimate computes the Runge error and, when f exposes a fourth
// derivative finite at the upper limit, the analytic bound.
func (e *Estimator) Estimate(f Function, lower, upper float64, n int, opts ...CallOption) (ErrorEstimate, error) {
	est := ErrorEstimate{CoarseIntervals: CoarseIntervals(n)}

	r, err := e.Runge(f, lower, upper, n, opts...)
	if err != nil {
		return est, err
	}
	est.Runge = r

	a, err := e.Analytic(f, lower, upper, n)
	switch {
	case err == nil:
		est.Analytic = a
		est.HasAnalytic = true
	case !errors.Is(err, ErrNoFourthDerivative) && !errors.Is(err, ErrAnalyticUndefined):
		return est, err
	}
	return est, nil
}
