package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/simpson/internal/input"
	"github.com/san-kum/simpson/internal/quad"
	"github.com/san-kum/simpson/internal/report"
	"github.com/san-kum/simpson/internal/session"
)

var (
	accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	focused = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

type stage int

const (
	stageEquation stage = iota
	stageParams
	stageResult
)

const (
	fieldLower = iota
	fieldUpper
	fieldIntervals
	numFields
)

var fieldLabels = [numFields]string{"lower limit", "upper limit", "subintervals"}

// Form collects the integration parameters, runs the session and shows
// the narrated result.
type Form struct {
	sess  *session.Session
	stage stage

	ids    []int
	cursor int

	fields [numFields]string
	field  int
	err    string

	outcome *session.Outcome
	width   int
}

func NewForm(sess *session.Session, defaults input.Params) Form {
	f := Form{
		sess:  sess,
		ids:   sess.Registry().IDs(),
		width: 80,
	}
	for i, id := range f.ids {
		if id == defaults.Equation {
			f.cursor = i
		}
	}
	f.fields[fieldLower] = formatFloat(defaults.Lower)
	f.fields[fieldUpper] = formatFloat(defaults.Upper)
	f.fields[fieldIntervals] = fmt.Sprintf("%d", defaults.Intervals)
	return f
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

// Outcome returns the last calculation, or nil.
func (f Form) Outcome() *session.Outcome { return f.outcome }

func (f Form) Init() tea.Cmd { return nil }

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return f, tea.Quit
		}
		switch f.stage {
		case stageEquation:
			return f.equationKey(msg)
		case stageParams:
			return f.paramsKey(msg)
		case stageResult:
			return f.resultKey(msg)
		}
	case tea.WindowSizeMsg:
		f.width = msg.Width
	}
	return f, nil
}

func (f Form) equationKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return f, tea.Quit
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(f.ids)-1 {
			f.cursor++
		}
	case "enter", " ":
		f.stage = stageParams
		f.field = fieldLower
		f.err = ""
	}
	return f, nil
}

func (f Form) paramsKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "esc":
		f.stage = stageEquation
		f.err = ""
	case "up", "shift+tab":
		if f.field > 0 {
			f.field--
		}
	case "down", "tab":
		if f.field < numFields-1 {
			f.field++
		}
	case "backspace":
		if buf := f.fields[f.field]; len(buf) > 0 {
			f.fields[f.field] = buf[:len(buf)-1]
		}
	case "enter":
		if f.field < numFields-1 {
			f.field++
			return f, nil
		}
		return f.submit(), nil
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if strings.ContainsRune("0123456789.,-+/pi", r) {
					f.fields[f.field] += string(r)
				}
			}
		}
	}
	return f, nil
}

func (f Form) submit() Form {
	p, err := f.params()
	if err != nil {
		f.err = err.Error()
		return f
	}
	out, err := f.sess.Run(p)
	if err != nil {
		f.err = err.Error()
		return f
	}
	f.outcome = out
	f.err = ""
	f.stage = stageResult
	return f
}

func (f Form) params() (session.Params, error) {
	p := session.Params{Equation: f.ids[f.cursor], Estimate: true}

	var err error
	if p.Lower, err = input.ParseFloat(f.fields[fieldLower]); err != nil {
		return p, fmt.Errorf("lower limit: %w", err)
	}
	if p.Upper, err = input.ParseFloat(f.fields[fieldUpper]); err != nil {
		return p, fmt.Errorf("upper limit: %w", err)
	}
	if p.Intervals, err = input.ParseInt(f.fields[fieldIntervals]); err != nil {
		return p, fmt.Errorf("subintervals: %w", err)
	}
	if err := quad.Validate(p.Lower, p.Upper, p.Intervals); err != nil {
		return p, err
	}
	return p, nil
}

func (f Form) resultKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		return f, tea.Quit
	case "r":
		f.stage = stageParams
		f.field = fieldLower
	case "e":
		f.stage = stageEquation
	}
	return f, nil
}

func (f Form) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(report.Title.Render("  simpson") + muted.Render("  definite integrals by Simpson's rule") + "\n\n")

	switch f.stage {
	case stageEquation:
		f.viewEquations(&b)
	case stageParams:
		f.viewParams(&b)
	case stageResult:
		f.viewResult(&b)
	}
	return b.String()
}

func (f Form) viewEquations(b *strings.Builder) {
	reg := f.sess.Registry()
	for i, id := range f.ids {
		eq, _ := reg.Get(id)
		line := fmt.Sprintf("[%d] %s", id, eq.Name)
		if i == f.cursor {
			b.WriteString(focused.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + muted.Render("  ↑/↓ select · enter choose · q quit") + "\n")
}

func (f Form) viewParams(b *strings.Builder) {
	eq, _ := f.sess.Registry().Get(f.ids[f.cursor])
	b.WriteString("  " + accent.Render(fmt.Sprintf("∫ %s dx", eq.Name)) + "\n\n")
	for i := 0; i < numFields; i++ {
		label := fmt.Sprintf("  %-13s", fieldLabels[i])
		if i == f.field {
			b.WriteString(focused.Render(label) + " " + f.fields[i] + "█\n")
		} else {
			b.WriteString(muted.Render(label) + " " + f.fields[i] + "\n")
		}
	}
	if f.err != "" {
		b.WriteString("\n  " + warning.Render(f.err) + "\n")
	}
	b.WriteString("\n" + muted.Render("  tab next field · enter calculate · esc back") + "\n")
}

func (f Form) viewResult(b *strings.Builder) {
	report.Outcome(b, f.outcome)
	if f.outcome.Result.Resolved {
		if graph, err := report.Samples(f.outcome.Nodes, f.outcome.EquationName); err == nil {
			b.WriteString("\n" + graph + "\n")
		}
	}
	b.WriteString("\n" + muted.Render("  r edit · e equations · q quit") + "\n")
}

// Run shows the form and returns the last outcome, or nil when the user
// quit before calculating.
func Run(sess *session.Session, defaults input.Params) (*session.Outcome, error) {
	final, err := tea.NewProgram(NewForm(sess, defaults)).Run()
	if err != nil {
		return nil, err
	}
	return final.(Form).Outcome(), nil
}
