package report

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simpson/internal/quad"
	"github.com/san-kum/simpson/internal/session"
)

const (
	plotHeight = 12
	plotWidth  = 72
)

// Samples plots the accepted node values in order of x.
func Samples(nodes []quad.Node, caption string) (string, error) {
	if len(nodes) < 2 {
		return "", fmt.Errorf("report: need at least 2 samples to plot, got %d", len(nodes))
	}
	ys := make([]float64, len(nodes))
	for i, n := range nodes {
		ys[i] = n.Y
	}
	caption = fmt.Sprintf("%s on [%g, %g]", caption, nodes[0].X, nodes[len(nodes)-1].X)
	return asciigraph.Plot(ys,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	), nil
}

// Convergence plots log10 of the Runge error per level.
func Convergence(levels []session.Level) (string, error) {
	data := make([]float64, 0, len(levels))
	for _, l := range levels {
		if l.Runge > 0 {
			data = append(data, math.Log10(l.Runge))
		}
	}
	if len(data) < 2 {
		return "", fmt.Errorf("report: not enough resolved levels to plot")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight/2),
		asciigraph.Precision(1),
		asciigraph.Caption("log10 Runge error per doubling"),
	), nil
}
