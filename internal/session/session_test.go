package session

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/simpson/internal/equations"
	"github.com/san-kum/simpson/internal/quad"
)

func TestRunSmooth(t *testing.T) {
	s := New(equations.Default())

	out, err := s.Run(Params{Equation: 1, Lower: 0, Upper: math.Pi, Intervals: 20, Estimate: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !out.Result.Resolved {
		t.Fatal("expected resolved result")
	}
	if math.Abs(out.Result.Value-math.Pi) > 1e-4 {
		t.Errorf("expected pi, got %f", out.Result.Value)
	}
	if out.EquationName != "x * sin(x)" {
		t.Errorf("unexpected name %q", out.EquationName)
	}
	if len(out.Nodes) != 21 {
		t.Errorf("expected 21 recorded nodes, got %d", len(out.Nodes))
	}
	if out.Estimate == nil || !out.Estimate.HasAnalytic {
		t.Fatalf("expected full error estimate, got %+v", out.Estimate)
	}
	if out.Estimate.Runge <= 0 || out.Estimate.Runge > 1e-3 {
		t.Errorf("implausible Runge error %e", out.Estimate.Runge)
	}
}

func TestRunUnknownEquation(t *testing.T) {
	_, err := New(equations.Default()).Run(Params{Equation: 42, Lower: 0, Upper: 1, Intervals: 2})
	if !errors.Is(err, equations.ErrUnknownEquation) {
		t.Errorf("expected ErrUnknownEquation, got %v", err)
	}
}

func TestRunInvalidPartition(t *testing.T) {
	_, err := New(equations.Default()).Run(Params{Equation: 1, Lower: 0, Upper: 1, Intervals: 5})
	if !errors.Is(err, quad.ErrInvalidPartition) {
		t.Errorf("expected ErrInvalidPartition, got %v", err)
	}
}

func TestRunUnresolvedSkipsEstimate(t *testing.T) {
	out, err := New(equations.Default()).Run(Params{Equation: 2, Lower: -1, Upper: 1, Intervals: 10, Estimate: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Result.Resolved {
		t.Fatal("expected unresolved result")
	}
	if out.Estimate != nil {
		t.Error("unresolved result must not carry an estimate")
	}
	if len(out.Nodes) != 0 {
		t.Errorf("pre-check should stop before sampling, got %d nodes", len(out.Nodes))
	}
}

func TestRunWithoutSingularityTable(t *testing.T) {
	s := New(equations.Default(), WithSingularityTable(false))

	out, err := s.Run(Params{Equation: 2, Lower: -1, Upper: 1, Intervals: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !out.Result.Resolved {
		t.Error("without the table the pole at 0 is averaged away")
	}
}

func TestRunCustomEpsilon(t *testing.T) {
	s := New(equations.Default(), WithIntegrator(quad.NewIntegrator(quad.WithEpsilon(0.01))))

	out, err := s.Run(Params{Equation: 3, Lower: -1, Upper: 1, Intervals: 4})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	d, ok := out.Result.Last()
	if !ok || d.Left != -0.01 || d.Right != 0.01 {
		t.Errorf("expected probes at ±0.01, got %+v", d)
	}
}

func TestConverge(t *testing.T) {
	levels, err := New(equations.Default()).Converge(Params{Equation: 1, Lower: 0, Upper: math.Pi, Intervals: 4}, 4)
	if err != nil {
		t.Fatalf("converge failed: %v", err)
	}
	if len(levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(levels))
	}

	for i, l := range levels {
		if l.Intervals != 4<<i {
			t.Errorf("level %d: expected %d intervals, got %d", i, 4<<i, l.Intervals)
		}
		if !l.Resolved {
			t.Errorf("level %d unresolved", i)
		}
	}
	if levels[0].Runge != 0 {
		t.Error("first level has nothing to compare against")
	}
	for _, l := range levels[2:] {
		if l.Ratio < 12 || l.Ratio > 20 {
			t.Errorf("n=%d: expected ratio near 16, got %.2f", l.Intervals, l.Ratio)
		}
	}
}

func TestConvergeRejects(t *testing.T) {
	s := New(equations.Default())

	if _, err := s.Converge(Params{Equation: 1, Lower: 0, Upper: 1, Intervals: 4}, 0); err == nil {
		t.Error("expected error for zero levels")
	}
	if _, err := s.Converge(Params{Equation: 1, Lower: 0, Upper: 1, Intervals: 4}, MaxLevels+1); err == nil {
		t.Error("expected error above the level cap")
	}
	if _, err := s.Converge(Params{Equation: 1, Lower: 1, Upper: 0, Intervals: 4}, 2); !errors.Is(err, quad.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestRunAnalyticUndefinedAtUpper(t *testing.T) {
	out, err := New(equations.Default()).Run(Params{Equation: 3, Lower: -math.Pi, Upper: 0, Intervals: 10, Estimate: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !out.Result.Resolved {
		t.Fatal("expected the removable point at 0 to be repaired")
	}
	if out.Estimate == nil {
		t.Fatal("expected a Runge estimate")
	}
	if out.Estimate.HasAnalytic {
		t.Errorf("f⁗ of sin(x)/x is undefined at 0, got %+v", *out.Estimate)
	}
	if _, err := json.Marshal(out); err != nil {
		t.Errorf("outcome should encode: %v", err)
	}
}
