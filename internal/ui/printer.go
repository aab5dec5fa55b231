package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/credload/pkg/credload"
)

// MaxListedProblems caps how many invalid lines a check summary lists.
const MaxListedProblems = 20

// Printer writes human-readable load and check summaries.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter styles output only when w is a color-capable terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, color: ColorEnabled(w)}
}

// NewPlainPrinter never styles output.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) field(label, value string) {
	if p.color {
		fmt.Fprintf(p.w, "  %s %s\n", LabelStyle.Render(label), value)
		return
	}
	fmt.Fprintf(p.w, "  %-11s %s\n", label, value)
}

// LoadSummary prints the outcome of a successful load.
func (p *Printer) LoadSummary(r credload.Report) {
	fmt.Fprintf(p.w, "%s %s\n", p.style(SuccessStyle, SymbolCheck), p.style(TitleStyle, "Loaded "+r.Source))
	p.field("store", r.Store)
	p.field("records", fmt.Sprintf("%d (%d distinct usernames)", r.Entries, r.Unique))
	p.field("load id", r.LoadID)
	p.field("sha256", r.Checksum)
	p.field("duration", r.Duration.Round(time.Millisecond).String())
}

// CheckSummary prints the outcome of a check, listing invalid lines.
func (p *Printer) CheckSummary(r credload.Report, problems []*credload.RecordError) {
	if len(problems) == 0 {
		fmt.Fprintf(p.w, "%s %s\n", p.style(SuccessStyle, SymbolCheck), p.style(TitleStyle, r.Source+" is valid"))
	} else {
		fmt.Fprintf(p.w, "%s %s\n", p.style(ErrorStyle, SymbolCross),
			p.style(TitleStyle, fmt.Sprintf("%s has %d invalid line(s)", r.Source, len(problems))))
	}
	p.field("lines", fmt.Sprintf("%d", r.Lines))
	p.field("records", fmt.Sprintf("%d valid (%d distinct usernames)", r.Entries, r.Unique))
	p.field("sha256", r.Checksum)
	p.field("normalized", r.NormalizedChecksum)

	if len(problems) == 0 {
		return
	}
	fmt.Fprintln(p.w)
	for i, problem := range problems {
		if i == MaxListedProblems {
			fmt.Fprintln(p.w, p.style(MutedStyle, fmt.Sprintf("  ... and %d more", len(problems)-MaxListedProblems)))
			break
		}
		fmt.Fprintf(p.w, "  %s %s\n", p.style(ErrorStyle, SymbolBullet), problem.Error())
	}
}

// Failure prints an error that ended a command.
func (p *Printer) Failure(err error) {
	msg := strings.TrimSpace(err.Error())
	fmt.Fprintf(p.w, "%s %s\n", p.style(ErrorStyle, SymbolCross), p.style(ErrorStyle, msg))
}
