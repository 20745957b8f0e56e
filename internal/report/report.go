// Package report renders calculation results for the terminal. Nothing in
// here computes; it only formats what quad and session return.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/simpson/internal/equations"
	"github.com/san-kum/simpson/internal/quad"
	"github.com/san-kum/simpson/internal/session"
	"github.com/san-kum/simpson/internal/storage"
)

func Equations(w io.Writer, reg *equations.Registry) {
	fmt.Fprintln(w, Title.Render("Equations:"))
	for _, id := range reg.IDs() {
		eq, _ := reg.Get(id)
		fmt.Fprintf(w, "[%d] %s\n", id, eq.Name)
	}
}

func Discontinuities(w io.Writer, ds []quad.Discontinuity) {
	for _, d := range ds {
		if d.Fixable {
			fmt.Fprintf(w, "%s x = %g\n", Repaired.Render("Discontinuity encountered at"), d.X)
			fmt.Fprintf(w, "Fixing it by taking an average between x1 = %g and x2 = %g\n", d.Left, d.Right)
			fmt.Fprintf(w, "New value to fix the discontinuity = %g\n", d.Value)
			continue
		}
		fmt.Fprintf(w, "%s at x = %g\n", Failed.Render(fmt.Sprintf("Function has a non-removable %s discontinuity", d.Kind)), d.X)
	}
}

// Result prints the value only when res is resolved.
func Result(w io.Writer, res quad.Result) {
	if res.Usable() {
		fmt.Fprintf(w, "%s %s\n", Good.Render("The definitive integral is"), Value.Render(fmt.Sprintf("%.10g", res.Value)))
		return
	}
	if d, ok := res.Last(); ok && !d.Fixable {
		fmt.Fprintln(w, Failed.Render("Definitive integral cannot be found because of discontinuity."))
		return
	}
	fmt.Fprintln(w, Failed.Render("Definitive integral cannot be found because function is not defined somewhere from lower to upper limit."))
}

func Estimate(w io.Writer, est quad.ErrorEstimate) {
	fmt.Fprintf(w, "%s %s\n", Label.Render("Methods margin of error by Runge rule:"), Value.Render(fmt.Sprintf("%g", est.Runge)))
	if est.HasAnalytic {
		fmt.Fprintf(w, "%s %s\n", Label.Render("Fourth-derivative estimate at the upper limit:"), Value.Render(fmt.Sprintf("%g", est.Analytic)))
	}
}

// Outcome prints the full narration of one run.
func Outcome(w io.Writer, out *session.Outcome) {
	fmt.Fprintln(w, Rule())
	if len(out.Result.Discontinuities) > 0 {
		Discontinuities(w, out.Result.Discontinuities)
		fmt.Fprintln(w)
	}
	Result(w, out.Result)
	if out.Result.Resolved && out.Estimate != nil {
		Estimate(w, *out.Estimate)
	}
}

func Levels(w io.Writer, levels []session.Level) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "N\tVALUE\tRUNGE\tRATIO")
	for _, l := range levels {
		if !l.Resolved {
			fmt.Fprintf(tw, "%d\tunresolved\t-\t-\n", l.Intervals)
			continue
		}
		runge, ratio := "-", "-"
		if l.Runge > 0 {
			runge = fmt.Sprintf("%.3e", l.Runge)
		}
		if l.Ratio > 0 {
			ratio = fmt.Sprintf("%.2f", l.Ratio)
		}
		fmt.Fprintf(tw, "%d\t%.12g\t%s\t%s\n", l.Intervals, l.Value, runge, ratio)
	}
	return tw.Flush()
}

func Runs(w io.Writer, runs []storage.RunMetadata) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEQUATION\tTIME\tBOUNDS\tN\tVALUE")
	for _, r := range runs {
		value := "unresolved"
		if r.Value != nil {
			value = fmt.Sprintf("%.10g", *r.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t[%g, %g]\t%d\t%s\n",
			r.ID,
			r.EquationName,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Lower,
			r.Upper,
			r.Intervals,
			value,
		)
	}
	return tw.Flush()
}

// Run prints a stored run the same way Outcome prints a live one.
func Run(w io.Writer, meta *storage.RunMetadata) {
	fmt.Fprintf(w, "%s %s\n", Label.Render("run:"), meta.ID)
	fmt.Fprintf(w, "%s [%d] %s\n", Label.Render("equation:"), meta.Equation, meta.EquationName)
	fmt.Fprintf(w, "%s [%g, %g], n = %d\n", Label.Render("interval:"), meta.Lower, meta.Upper, meta.Intervals)

	res := quad.Result{Resolved: meta.Resolved, Discontinuities: meta.Discontinuities, Intervals: meta.Intervals}
	if meta.Value != nil {
		res.Value = *meta.Value
	}
	Outcome(w, &session.Outcome{Result: res, Estimate: meta.Estimate})
}
