package check

import (
	"fmt"
	"strings"

	"github.com/abdidvp/editgate/internal/domain"
)

// SecurityChecklist is the manual review list shown for sensitive files.
var SecurityChecklist = []string{
	"Ensure no secrets are hardcoded",
	"Verify file is in .gitignore (if contains secrets)",
	"Check if secrets should be in environment variables",
	"Confirm no secrets will be committed to git",
}

const faultHint = "The tool could not be run. Check that it is installed and that the working directory exists."

// StatusIcon returns the marker used in per-check status lines.
func StatusIcon(o domain.CheckOutcome) string {
	switch {
	case o.Status == domain.StatusSkipped:
		return "⏭️"
	case o.Status == domain.StatusPassed:
		return "✅"
	case o.Severity == domain.SeverityBlocking:
		return "❌"
	default:
		return "⚠️"
	}
}

// ComposeMessage renders the human-readable summary of v. A verdict without
// outcomes has no message.
func ComposeMessage(v domain.Verdict) string {
	if len(v.Outcomes) == 0 {
		return ""
	}

	var b strings.Builder
	switch {
	case !v.Proceed:
		fmt.Fprintf(&b, "🔴 Validation blocked for %s\n", v.File)
	case len(v.AdvisoryIssues) > 0:
		fmt.Fprintf(&b, "⚠️ Validation completed with warnings for %s\n", v.File)
	default:
		fmt.Fprintf(&b, "✅ Validation completed for %s\n", v.File)
	}

	b.WriteString("\nChecks performed:\n")
	for _, o := range v.Outcomes {
		line := fmt.Sprintf("- %s %s", StatusIcon(o), o.Name)
		if o.Status == domain.StatusSkipped && o.Diagnostic != "" {
			line += " (" + o.Diagnostic + ")"
		}
		b.WriteString(line + "\n")
	}

	for _, o := range v.BlockingIssues {
		b.WriteString("\n")
		writeIssue(&b, "🔴", o, v.File)
	}
	for _, o := range v.AdvisoryIssues {
		b.WriteString("\n")
		if o.ID == domain.CheckSensitive {
			writeSensitiveAdvisory(&b, o, v.File)
			continue
		}
		writeIssue(&b, "⚠️", o, v.File)
	}

	b.WriteString("\n")
	switch {
	case !v.Proceed:
		b.WriteString("Resolve the blocking issues before deployment.")
	case len(v.AdvisoryIssues) == 0:
		b.WriteString("File is ready for deployment.")
	default:
		b.WriteString("Warnings do not block this change.")
	}
	return b.String()
}

func writeIssue(b *strings.Builder, icon string, o domain.CheckOutcome, file string) {
	if o.Fault {
		fmt.Fprintf(b, "%s %s could not run for %s:\n", icon, o.Name, file)
	} else {
		fmt.Fprintf(b, "%s %s issues in %s:\n", icon, o.Name, file)
	}
	if d := strings.TrimSpace(o.Diagnostic); d != "" {
		b.WriteString(d + "\n")
	}
	hint := o.Hint
	if o.Fault {
		hint = faultHint
	}
	if hint != "" {
		b.WriteString("\n" + hint + "\n")
	}
}

func writeSensitiveAdvisory(b *strings.Builder, o domain.CheckOutcome, file string) {
	fmt.Fprintf(b, "🔐 WARNING: Modified sensitive file: %s\n\n", file)
	b.WriteString("Security checklist:\n")
	for _, item := range SecurityChecklist {
		b.WriteString("- [ ] " + item + "\n")
	}
	if d := strings.TrimSpace(o.Diagnostic); d != "" {
		b.WriteString("\n" + d + "\n")
	}
	fmt.Fprintf(b, "\nRun: git status | grep %q\n", file)
}
