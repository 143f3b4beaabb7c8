package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/editgate/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderVerdict renders a verdict for a terminal.
func RenderVerdict(v domain.Verdict) string {
	var b strings.Builder

	// ── Header ──
	var status string
	var color lipgloss.Color
	switch {
	case !v.Proceed:
		status, color = "BLOCKED", danger
	case len(v.AdvisoryIssues) > 0:
		status, color = "PASSED WITH WARNINGS", warning
	default:
		status, color = "PASSED", success
	}
	statusStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(status)
	file := v.File
	if file == "" {
		file = "(no file)"
	}
	b.WriteString(boxStyle.BorderForeground(color).Render(titleStyle.Render(file) + "\n" + statusStyled))
	b.WriteString("\n\n")

	if len(v.Outcomes) == 0 {
		b.WriteString("  " + dimStyle.Render("No checks apply to this file.") + "\n")
		return b.String()
	}

	// ── Checks ──
	for _, o := range v.Outcomes {
		renderOutcomeLine(&b, o)
	}

	// ── Issues ──
	if len(v.BlockingIssues)+len(v.AdvisoryIssues) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Issues") + "  ")
		if n := len(v.BlockingIssues); n > 0 {
			b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d blocking", n)) + "  ")
		}
		if n := len(v.AdvisoryIssues); n > 0 {
			b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d advisory", n)))
		}
		b.WriteString("\n")
		for _, o := range v.BlockingIssues {
			renderIssue(&b, o, errorTagStyle.Render("block"))
		}
		for _, o := range v.AdvisoryIssues {
			renderIssue(&b, o, warnTagStyle.Render("warn "))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderOutcomeLine(b *strings.Builder, o domain.CheckOutcome) {
	name := padRight(o.Name, 26)
	switch {
	case o.Status == domain.StatusSkipped:
		fmt.Fprintf(b, "  %s %s %s\n", skipStyle.Render("○"), skipStyle.Render(name), skipStyle.Render(o.Diagnostic))
	case o.Status == domain.StatusPassed:
		fmt.Fprintf(b, "  %s %s %s\n", passStyle.Render("●"), name, dimStyle.Render(string(o.Severity)))
	case o.Severity == domain.SeverityBlocking:
		fmt.Fprintf(b, "  %s %s %s\n", failStyle.Render("●"), name, failStyle.Render("failed"))
	default:
		fmt.Fprintf(b, "  %s %s %s\n", warnStyle.Render("●"), name, warnStyle.Render("warning"))
	}
}

func renderIssue(b *strings.Builder, o domain.CheckOutcome, tag string) {
	b.WriteString("\n")
	title := o.Name
	if o.Fault {
		title += " (could not run)"
	}
	fmt.Fprintf(b, "    %s %s\n", tag, titleStyle.Render(title))
	if o.Command != "" {
		fmt.Fprintf(b, "         %s\n", fileStyle.Render("$ "+o.Command))
	}
	for _, line := range strings.Split(strings.TrimSpace(o.Diagnostic), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(line))
	}
	if o.Hint != "" {
		fmt.Fprintf(b, "         %s\n", hintStyle.Render(o.Hint))
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
