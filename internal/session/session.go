// Package session runs calculations against the equation registry and
// gathers everything the presentation and storage layers need.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/simpson/internal/equations"
	"github.com/san-kum/simpson/internal/quad"
)

type Params struct {
	Equation  int     `json:"equation"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Intervals int     `json:"intervals"`
	Estimate  bool    `json:"estimate"`
}

type Outcome struct {
	Params
	EquationName string              `json:"equation_name"`
	Result       quad.Result         `json:"result"`
	Estimate     *quad.ErrorEstimate `json:"estimate,omitempty"`
	Nodes        []quad.Node         `json:"-"`
	Elapsed      time.Duration       `json:"elapsed"`
}

type Session struct {
	registry         *equations.Registry
	integ            *quad.Integrator
	est              *quad.Estimator
	singularityTable bool
	log              zerolog.Logger
}

type Option func(*Session)

// WithSingularityTable toggles the per-equation asymptote pre-check.
func WithSingularityTable(on bool) Option {
	return func(s *Session) { s.singularityTable = on }
}

func WithIntegrator(integ *quad.Integrator) Option {
	return func(s *Session) { s.integ = integ }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func New(registry *equations.Registry, opts ...Option) *Session {
	s := &Session{
		registry:         registry,
		singularityTable: true,
		log:              zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.integ == nil {
		s.integ = quad.NewIntegrator()
	}
	s.est = quad.NewEstimator(s.integ)
	return s
}

func (s *Session) Registry() *equations.Registry { return s.registry }

func (s *Session) callOptions(id int) []quad.CallOption {
	if !s.singularityTable {
		return nil
	}
	return []quad.CallOption{quad.WithSingularities(s.registry.Singularities(id))}
}

// Run integrates the selected equation. The error estimate is attached
// only for resolved results.
func (s *Session) Run(p Params) (*Outcome, error) {
	eq, err := s.registry.Get(p.Equation)
	if err != nil {
		return nil, err
	}
	f := eq.Function()

	rec := &quad.NodeRecorder{}
	opts := append(s.callOptions(p.Equation), quad.WithObserver(rec))

	start := time.Now()
	res, err := s.integ.Calculate(f, p.Lower, p.Upper, p.Intervals, opts...)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Params:       p,
		EquationName: eq.Name,
		Result:       res,
		Nodes:        rec.Nodes,
	}

	s.log.Debug().
		Int("equation", p.Equation).
		Float64("lower", p.Lower).
		Float64("upper", p.Upper).
		Int("intervals", p.Intervals).
		Bool("resolved", res.Resolved).
		Int("discontinuities", len(res.Discontinuities)).
		Msg("integration finished")

	if p.Estimate && res.Resolved {
		est, err := s.est.Estimate(f, p.Lower, p.Upper, p.Intervals, s.callOptions(p.Equation)...)
		switch {
		case err == nil:
			out.Estimate = &est
		case errors.Is(err, quad.ErrUnresolved):
			s.log.Warn().Int("coarse_intervals", est.CoarseIntervals).Msg("coarse run unresolved, no error estimate")
		default:
			return nil, err
		}
	}

	out.Elapsed = time.Since(start)
	return out, nil
}

type Level struct {
	Intervals int     `json:"intervals"`
	Value     float64 `json:"value"`
	Resolved  bool    `json:"resolved"`
	// Runge compares this level with the previous one; zero on the first.
	Runge float64 `json:"runge"`
	// Ratio is the previous level's Runge error over this one's.
	Ratio float64 `json:"ratio"`
}

// MaxLevels caps the number of doublings Converge will run.
const MaxLevels = 20

// Converge integrates at p.Intervals, twice that, and so on for levels
// resolutions, running them concurrently.
func (s *Session) Converge(p Params, levels int) ([]Level, error) {
	if levels < 1 || levels > MaxLevels {
		return nil, fmt.Errorf("session: levels must be between 1 and %d, got %d", MaxLevels, levels)
	}
	eq, err := s.registry.Get(p.Equation)
	if err != nil {
		return nil, err
	}
	if err := quad.Validate(p.Lower, p.Upper, p.Intervals); err != nil {
		return nil, err
	}
	f := eq.Function()
	opts := s.callOptions(p.Equation)

	out := make([]Level, levels)
	var g errgroup.Group
	for i := range out {
		n := p.Intervals << i
		g.Go(func() error {
			res, err := s.integ.Calculate(f, p.Lower, p.Upper, n, opts...)
			if err != nil {
				return err
			}
			out[i] = Level{Intervals: n, Value: res.Value, Resolved: res.Resolved}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := 1; i < len(out); i++ {
		if !out[i].Resolved || !out[i-1].Resolved {
			continue
		}
		out[i].Runge = quad.RungeError(out[i].Value, out[i-1].Value)
		if i > 1 && out[i].Runge > 0 && out[i-1].Runge > 0 {
			out[i].Ratio = out[i-1].Runge / out[i].Runge
		}
	}
	return out, nil
}
