// Package ui renders initializer reports, task listings and status lines for
// the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/starter/internal/project"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
)

var titleCaser = cases.Title(language.English)

// Mark characters used in status lines.
const (
	MarkSuccess = "✓"
	MarkFailure = "✗"
	MarkInfo    = "ℹ"
)

// Printer writes styled output. With Plain set, styles are skipped so the
// output can be piped or compared in tests.
type Printer struct {
	Out   io.Writer
	Plain bool
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer, plain bool) *Printer {
	return &Printer{Out: out, Plain: plain}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.Plain {
		return s
	}

	return style.Render(s)
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", p.render(successStyle, MarkSuccess), fmt.Sprintf(format, args...))
}

// Failure prints a line prefixed with a cross.
func (p *Printer) Failure(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", p.render(failureStyle, MarkFailure), fmt.Sprintf(format, args...))
}

// Info prints a line prefixed with an information mark.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", p.render(noticeStyle, MarkInfo), fmt.Sprintf(format, args...))
}

// Title prints a bold heading.
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.Out, p.render(titleStyle, s))
}

// StatusLabel returns the display label for a step status, e.g. "Unchanged".
func StatusLabel(s project.Status) string {
	return titleCaser.String(string(s))
}

var stepLabels = map[string]string{
	project.StepRemoveGit:      "Remove git history",
	project.StepRemoveVenv:     "Remove virtual environment",
	project.StepRemoveDatabase: "Remove local database",
	project.StepReadme:         "Update README title",
	project.StepMetadata:       "Update project metadata",
}

func stepLabel(name string) string {
	if label, ok := stepLabels[name]; ok {
		return label
	}

	return name
}

func (p *Printer) mark(s project.Status) string {
	switch s {
	case project.StatusDone:
		return p.render(successStyle, MarkSuccess)
	case project.StatusFailed:
		return p.render(failureStyle, MarkFailure)
	case project.StatusPlanned:
		return p.render(noticeStyle, MarkInfo)
	default:
		return p.render(mutedStyle, "-")
	}
}

// Report prints one line per step, followed by a summary and, unless the run
// was a dry run or was interrupted, the follow-up panel.
func (p *Printer) Report(r *project.Report) {
	heading := "Initializing " + r.ProjectName
	if r.DryRun {
		heading += " (dry run)"
	}
	p.Title(heading)
	fmt.Fprintln(p.Out)

	for _, res := range r.Results {
		line := fmt.Sprintf("%s %-28s %-10s %s",
			p.mark(res.Status), stepLabel(res.Name), StatusLabel(res.Status), res.Target)
		fmt.Fprintln(p.Out, strings.TrimRight(line, " "))

		if res.Err != nil {
			fmt.Fprintf(p.Out, "    %s\n", p.render(failureStyle, res.Err.Error()))
		} else if res.Detail != "" && res.Status != project.StatusDone {
			fmt.Fprintf(p.Out, "    %s\n", p.render(detailStyle, res.Detail))
		}
	}
	fmt.Fprintln(p.Out)

	switch {
	case r.Interrupted:
		p.Failure("Initialization interrupted; %d step(s) not run", r.NotRun())
	case r.Failed():
		failedCount := r.Counts()[project.StatusFailed]
		p.Failure("Finished with %d failed step(s); fix them manually or re-run", failedCount)
	case r.DryRun:
		p.Info("Dry run complete, nothing was changed")
	default:
		p.Success("Project %s initialized", r.ProjectName)
	}

	if !r.DryRun && !r.Interrupted && len(r.FollowUp) > 0 {
		fmt.Fprintln(p.Out)
		p.FollowUp(r.FollowUp)
	}
}

// FollowUp prints the numbered next steps inside a bordered panel.
func (p *Printer) FollowUp(steps []string) {
	var b strings.Builder
	b.WriteString("Next steps:")
	for i, s := range steps {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, s)
	}

	if p.Plain {
		fmt.Fprintln(p.Out, b.String())
		return
	}
	fmt.Fprintln(p.Out, panelStyle.Render(b.String()))
}

// Table prints rows as left-aligned columns under a header.
func (p *Printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	format := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	upper := make([]string, len(header))
	for i, h := range header {
		upper[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(p.Out, p.render(titleStyle, format(upper)))
	for _, row := range rows {
		fmt.Fprintln(p.Out, format(row))
	}
}
