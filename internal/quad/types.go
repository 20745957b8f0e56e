package quad

import (
	"encoding/json"
	"fmt"
)

// Function is a real-valued function of one variable.
type Function interface {
	Eval(x float64) float64
}

// Func adapts an ordinary function to Function.
type Func func(x float64) float64

func (f Func) Eval(x float64) float64 { return f(x) }

// FourthDeriver is implemented by functions that know their analytic
// fourth derivative.
type FourthDeriver interface {
	FourthDerivative(x float64) float64
}

type Kind int

const (
	Removable Kind = iota + 1
	Asymptotic
)

func (k Kind) String() string {
	switch k {
	case Removable:
		return "removable"
	case Asymptotic:
		return "asymptotic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Discontinuity records a node whose sample was not finite.
// Value is only set when Fixable is true. Left and Right are the repair
// probes; both are zero for discontinuities reported by a singularity table.
type Discontinuity struct {
	X       float64 `json:"x"`
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Value   float64 `json:"value"`
	Kind    Kind    `json:"kind"`
	Fixable bool    `json:"fixable"`
}

// Singularity is a known non-removable point of a function.
type Singularity struct {
	X    float64
	Kind Kind
}

// Within reports whether the singularity lies in [lower, upper].
func (s Singularity) Within(lower, upper float64) bool {
	return lower <= s.X && s.X <= upper
}

type Result struct {
	Value           float64         `json:"value"`
	Resolved        bool            `json:"resolved"`
	Discontinuities []Discontinuity `json:"discontinuities"`
	Step            float64         `json:"step"`
	Intervals       int             `json:"intervals"`
}

// MarshalJSON omits the value of an unresolved result.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Value *float64 `json:"value,omitempty"`
	}{plain: plain(r)}
	if r.Resolved {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// Last returns the most recent discontinuity, if any.
func (r Result) Last() (Discontinuity, bool) {
	if len(r.Discontinuities) == 0 {
		return Discontinuity{}, false
	}
	return r.Discontinuities[len(r.Discontinuities)-1], true
}

type ErrorEstimate struct {
	Runge       float64 `json:"runge"`
	Analytic    float64 `json:"analytic,omitempty"`
	HasAnalytic bool    `json:"has_analytic"`
	// CoarseIntervals is the subinterval count of the second Runge run.
	CoarseIntervals int `json:"coarse_intervals"`
}
