package equations

import "github.com/san-kum/simpson/internal/quad"

// Equation is a registered integrand. D4 is optional.
type Equation struct {
	ID   int
	Name string
	F    func(x float64) float64
	D4   func(x float64) float64
}

func (e *Equation) Eval(x float64) float64 { return e.F(x) }

// Function returns e as a quad.Function. The returned value satisfies
// quad.FourthDeriver only when e carries D4.
func (e *Equation) Function() quad.Function {
	if e.D4 != nil {
		return withDerivative{e}
	}
	return plain{e}
}

type plain struct{ eq *Equation }

func (p plain) Eval(x float64) float64 { return p.eq.F(x) }

type withDerivative struct{ eq *Equation }

func (w withDerivative) Eval(x float64) float64             { return w.eq.F(x) }
func (w withDerivative) FourthDerivative(x float64) float64 { return w.eq.D4(x) }
