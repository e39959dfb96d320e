package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

// Printer writes run results to a terminal, coloured when the profile allows.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewPrinter creates a Printer on w. With color false every string is plain.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &Printer{out: w, profile: profile}
}

func (p *Printer) paint(s, hex string) termenv.Style {
	return p.profile.String(s).Foreground(p.profile.Color(hex))
}

func (p *Printer) verdict(accepting bool) termenv.Style {
	if accepting {
		return p.paint("ACCEPT", "#22c55e").Bold()
	}
	return p.paint("REJECT", "#ef4444").Bold()
}

// PrintOutcome prints the final state and the verdict of a whole-word run.
func (p *Printer) PrintOutcome(word []string, out domain.Outcome) {
	fmt.Fprintf(p.out, "%s  %q ends in %s\n", p.verdict(out.Accepting), domain.JoinWord(word), p.paint(out.State, "#818cf8"))
}

// PrintTrace prints one line per trace element:
//
//	0  s0           | 1101
//	1  s0  --1-->   | 101
func (p *Printer) PrintTrace(steps []domain.Step, out domain.Outcome) {
	width := 0
	for _, s := range steps {
		width = max(width, len(s.State))
	}

	for i, s := range steps {
		move := ""
		if s.Consumed != "" {
			move = "--" + s.Consumed + "-->"
		}
		fmt.Fprintf(p.out, "%3d  %s  %s | %s\n",
			i, p.paint(fmt.Sprintf("%-*s", width, s.State), "#818cf8"), p.paint(fmt.Sprintf("%-8s", move), "#a78bfa"), remaining(s.Remaining))
	}
	fmt.Fprintln(p.out, p.verdict(out.Accepting))
}

// PrintError prints a failed run; undefined transitions are shown as a
// rejection rather than a crash.
func (p *Printer) PrintError(err error) {
	fmt.Fprintf(p.out, "%s  %v\n", p.paint("ERROR", "#ef4444").Bold(), err)
}

// PrintReport prints a validation report.
func (p *Printer) PrintReport(r validator.Report) {
	status := p.paint("ok", "#22c55e")
	if !r.OK() {
		status = p.paint("invalid", "#ef4444").Bold()
	}
	fmt.Fprintf(p.out, "%s: %s\n", r.ID, status)
	for _, f := range r.Findings {
		color := "#f59e0b"
		if f.Severity == validator.SeverityError {
			color = "#ef4444"
		}
		fmt.Fprintf(p.out, "  %s %s\n", p.paint(string(f.Severity), color), f.Message)
	}
}

func remaining(word []string) string {
	if len(word) == 0 {
		return "ε"
	}
	return domain.JoinWord(word)
}
