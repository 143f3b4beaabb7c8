package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/editgate/internal/domain"
)

var sectionHeaderStyle = titleStyle.Foreground(accent)

// RenderPlan renders the classification of a path and the checks that would
// run for it.
func RenderPlan(facts domain.PathFacts, plan []domain.CheckDefinition) string {
	var b strings.Builder

	b.WriteString(boxStyle.BorderForeground(accent).Render(titleStyle.Render(facts.Path)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("language", 12)), facts.Language)
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("zone", 12)), facts.Zone)
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("test file", 12)), yesNo(facts.IsTestFile))
	sensitive := yesNo(facts.IsSensitive)
	if facts.IsSensitive {
		sensitive = warnStyle.Render(fmt.Sprintf("yes (%q)", facts.SensitiveMatch))
	}
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("sensitive", 12)), sensitive)

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("Checks"), dimStyle.Render(fmt.Sprintf("(%d)", len(plan))))
	if len(plan) == 0 {
		b.WriteString("    " + dimStyle.Render("none") + "\n")
	}
	for _, d := range plan {
		tag := warnTagStyle.Render("advisory")
		if d.Severity == domain.SeverityBlocking {
			tag = errorTagStyle.Render("blocking")
		}
		fmt.Fprintf(&b, "    %s %s %s\n", faintStyle.Render("●"), padRight(d.Name, 26), tag)
	}

	b.WriteString("\n")
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
