package equations

import (
	"math"

	"github.com/san-kum/simpson/internal/quad"
)

func Builtin() []Equation {
	return []Equation{
		{
			ID:   1,
			Name: "x * sin(x)",
			F:    func(x float64) float64 { return x * math.Sin(x) },
			D4:   func(x float64) float64 { return x*math.Sin(x) - 4*math.Cos(x) },
		},
		{
			ID:   2,
			Name: "1/x",
			F:    func(x float64) float64 { return 1 / x },
			D4:   func(x float64) float64 { return 24 / math.Pow(x, 5) },
		},
		{
			ID:   3,
			Name: "sin(x) / x",
			F:    func(x float64) float64 { return math.Sin(x) / x },
			D4: func(x float64) float64 {
				x2 := x * x
				s := (x2*x2 - 12*x2 + 24) * math.Sin(x)
				c := (4*x2*x - 24*x) * math.Cos(x)
				return (s + c) / math.Pow(x, 5)
			},
		},
		{
			ID:   4,
			Name: "(x^2-2x) / (x^2 - 4)",
			F:    func(x float64) float64 { return (x*x - 2*x) / (x*x - 4) },
			// x(x-2)/((x-2)(x+2)) = 1 - 2/(x+2) away from x = 2
			D4: func(x float64) float64 { return -48 / math.Pow(x+2, 5) },
		},
		{
			ID:   5,
			Name: "x",
			F:    func(x float64) float64 { return x },
			D4:   func(float64) float64 { return 0 },
		},
		{
			ID:   6,
			Name: "x^3",
			F:    func(x float64) float64 { return x * x * x },
			D4:   func(float64) float64 { return 0 },
		},
	}
}

// KnownSingularities lists asymptotes that the symmetric repair heuristic
// would otherwise average away. x = 2 of equation 4 is removable and is
// left to the repair step.
var KnownSingularities = map[int][]quad.Singularity{
	2: {{X: 0, Kind: quad.Asymptotic}},
	4: {{X: -2, Kind: quad.Asymptotic}},
}
