package quad

import "fmt"

type Integrator struct {
	repairer Repairer
	epsilon  float64
}

type Option func(*Integrator)

// WithRepairer replaces the default SymmetricMean strategy.
func WithRepairer(r Repairer) Option {
	return func(in *Integrator) { in.repairer = r }
}

// WithEpsilon fixes the repair offset. A non-positive value restores the
// default of half a step.
func WithEpsilon(eps float64) Option {
	return func(in *Integrator) { in.epsilon = eps }
}

func NewIntegrator(opts ...Option) *Integrator {
	in := &Integrator{repairer: SymmetricMean{}}
	for _, opt := range opts {
		opt(in)
	}
	if in.repairer == nil {
		in.repairer = SymmetricMean{}
	}
	return in
}

type call struct {
	singularities []Singularity
	observers     []NodeObserver
}

// CallOption configures a single Calculate call.
type CallOption func(*call)

// WithSingularities enables the pre-check against known non-removable
// points. Any singularity inside [lower, upper] makes Calculate return an
// unresolved result before sampling.
func WithSingularities(s []Singularity) CallOption {
	return func(c *call) { c.singularities = append(c.singularities, s...) }
}

func WithObserver(o NodeObserver) CallOption {
	return func(c *call) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

func resultOnly() CallOption {
	return func(c *call) { c.observers = nil }
}

// Validate checks the preconditions of Calculate.
func Validate(lower, upper float64, n int) error {
	if IsDiscontinuous(lower) || IsDiscontinuous(upper) || lower >= upper {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, lower, upper)
	}
	if n <= 0 || n%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPartition, n)
	}
	return nil
}

// Calculate approximates the integral of f over [lower, upper] using n
// subintervals. Non-finite samples are repaired where possible; the first
// one that cannot be repaired stops sampling and leaves the result
// unresolved.
func (in *Integrator) Calculate(f Function, lower, upper float64, n int, opts ...CallOption) (Result, error) {
	if f == nil {
		return Result{}, fmt.Errorf("quad: nil function")
	}
	if err := Validate(lower, upper, n); err != nil {
		return Result{}, err
	}

	var c call
	for _, opt := range opts {
		opt(&c)
	}

	step := (upper - lower) / float64(n)
	res := Result{
		Resolved:        true,
		Step:            step,
		Intervals:       n,
		Discontinuities: make([]Discontinuity, 0),
	}

	for _, s := range c.singularities {
		if s.Within(lower, upper) {
			res.Resolved = false
			res.Discontinuities = append(res.Discontinuities, Discontinuity{X: s.X, Kind: s.Kind})
			return res, nil
		}
	}

	eps := in.epsilon
	if eps <= 0 {
		eps = step / 2
	}

	node := func(i int) float64 {
		if i == n {
			return upper
		}
		return lower + float64(i)*step
	}

	sample := func(i int) (float64, bool) {
		x := node(i)
		y := f.Eval(x)
		if !IsDiscontinuous(y) {
			return y, true
		}
		d := in.repairer.Repair(f, x, eps)
		res.Discontinuities = append(res.Discontinuities, d)
		return d.Value, d.Fixable
	}

	emit := func(i int, y, w float64) {
		for _, o := range c.observers {
			o.OnNode(Node{Index: i, X: node(i), Y: y, Weight: w})
		}
	}

	// endpoints first, lower then upper
	fa, ok := sample(0)
	if !ok {
		res.Resolved = false
		return res, nil
	}
	fb, ok := sample(n)
	if !ok {
		res.Resolved = false
		return res, nil
	}
	emit(0, fa, 1)

	total := fa + fb
	for i := 1; i < n; i++ {
		y, ok := sample(i)
		if !ok {
			res.Resolved = false
			return res, nil
		}
		w := 2.0
		if i%2 != 0 {
			w = 4.0
		}
		emit(i, y, w)
		total += w * y
	}
	emit(n, fb, 1)

	res.Value = total * step / 3
	return res, nil
}

// Usable reports whether the value may be read: the result is resolved
// and the sum stayed finite.
func (r Result) Usable() bool {
	return r.Resolved && !IsDiscontinuous(r.Value)
}
