package quad

import "math"

// IsDiscontinuous reports whether v is infinite or NaN.
func IsDiscontinuous(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
