package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Repaired = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffaa00"))

	Failed = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff4444"))

	Good = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))
)

const ruleWidth = 38

// Rule is the divider printed between the input and the results.
func Rule() string {
	return Subtle.Render(strings.Repeat("-", ruleWidth))
}
