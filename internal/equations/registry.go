package equations

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/simpson/internal/quad"
)

var ErrUnknownEquation = errors.New("equations: unknown equation id")

type Registry struct {
	equations     map[int]*Equation
	singularities map[int][]quad.Singularity
}

func NewRegistry() *Registry {
	return &Registry{
		equations:     make(map[int]*Equation),
		singularities: make(map[int][]quad.Singularity),
	}
}

// Default returns a registry holding the built-in equations and their
// singularity table. It panics if a built-in fails to register.
func Default() *Registry {
	r := NewRegistry()
	for _, eq := range Builtin() {
		if err := r.Register(eq); err != nil {
			panic(err)
		}
	}
	for id, s := range KnownSingularities {
		r.singularities[id] = append([]quad.Singularity(nil), s...)
	}
	return r
}

func (r *Registry) Register(eq Equation) error {
	if eq.ID <= 0 {
		return fmt.Errorf("equations: id must be positive, got %d", eq.ID)
	}
	if eq.F == nil {
		return fmt.Errorf("equations: equation %d has no function", eq.ID)
	}
	if _, ok := r.equations[eq.ID]; ok {
		return fmt.Errorf("equations: id %d already registered", eq.ID)
	}
	r.equations[eq.ID] = &eq
	return nil
}

// AddSingularity records a known non-removable point for id.
func (r *Registry) AddSingularity(id int, s quad.Singularity) {
	r.singularities[id] = append(r.singularities[id], s)
}

func (r *Registry) Get(id int) (*Equation, error) {
	eq, ok := r.equations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEquation, id)
	}
	return eq, nil
}

func (r *Registry) Evaluate(x float64, id int) (float64, error) {
	eq, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	return eq.F(x), nil
}

func (r *Registry) EvaluateFourthDerivative(x float64, id int) (float64, error) {
	eq, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	if eq.D4 == nil {
		return 0, fmt.Errorf("equation %d: %w", id, quad.ErrNoFourthDerivative)
	}
	return eq.D4(x), nil
}

// Singularities returns the known non-removable points of id, or nil.
func (r *Registry) Singularities(id int) []quad.Singularity {
	return r.singularities[id]
}

func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.equations))
	for id := range r.equations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
