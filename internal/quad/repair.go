package quad

// Repairer tries to replace a non-finite sample of f at x.
type Repairer interface {
	Repair(f Function, x, eps float64) Discontinuity
}

// SymmetricMean samples f once at x-eps and once at x+eps. When both
// probes are finite the discontinuity is removable and its value is the
// mean of the probes; otherwise it is asymptotic. No other offsets are
// tried.
type SymmetricMean struct{}

func (SymmetricMean) Repair(f Function, x, eps float64) Discontinuity {
	d := Discontinuity{
		X:     x,
		Left:  x - eps,
		Right: x + eps,
	}

	left := f.Eval(d.Left)
	right := f.Eval(d.Right)
	if IsDiscontinuous(left) || IsDiscontinuous(right) {
		d.Kind = Asymptotic
		return d
	}

	d.Kind = Removable
	d.Fixable = true
	d.Value = (left + right) / 2
	return d
}
