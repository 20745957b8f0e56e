package quad

import "errors"

// Domain errors for integration calls.
var (
	// ErrInvalidInterval indicates lower >= upper or a non-finite bound.
	ErrInvalidInterval = errors.New("quad: lower limit must be below upper limit")

	// ErrInvalidPartition indicates a non-positive or odd subinterval count.
	ErrInvalidPartition = errors.New("quad: intervals amount must be a positive even integer")

	// ErrUnresolved indicates a numeric value was requested from an
	// integration that hit an unrepairable discontinuity.
	ErrUnresolved = errors.New("quad: integral unresolved due to discontinuity")

	// ErrNoFourthDerivative indicates the function carries no analytic
	// fourth derivative.
	ErrNoFourthDerivative = errors.New("quad: fourth derivative not available")

	// ErrAnalyticUndefined indicates the fourth derivative is not finite at
	// the upper limit.
	ErrAnalyticUndefined = errors.New("quad: fourth derivative undefined at upper limit")
)
