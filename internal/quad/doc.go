// Package quad implements definite integration with the composite
// Simpson's rule.
//
// The package defines the integration primitives:
//
//   - [Func]: any real-valued function of one variable
//   - [Integrator]: the Simpson accumulation loop with discontinuity repair
//   - [Repairer]: strategy that patches a non-finite sample
//   - [Estimator]: Runge and fourth-derivative error estimates
//
// # Example
//
//	integ := quad.NewIntegrator()
//	res, err := integ.Calculate(quad.Func(math.Sin), 0, math.Pi, 10)
//	if err == nil && res.Resolved {
//		fmt.Println(res.Value)
//	}
//
// # Discontinuities
//
// Every sample goes through [IsDiscontinuous]. A non-finite sample is
// handed to the [Repairer]; the first sample that cannot be repaired stops
// the loop and the [Result] is marked unresolved. An unresolved result is
// a normal outcome, not an error, and its Value must not be read.
//
// # Thread Safety
//
// Integrator and Estimator hold no per-call state. Calculate may be called
// from several goroutines as long as the observers passed to it are safe
// for concurrent use.
package quad
