package application

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"al.essio.dev/pkg/shellescape"

	"github.com/abdidvp/editgate/internal/domain"
	"github.com/abdidvp/editgate/internal/domain/check"
)

// CommandData is the data available to command templates.
type CommandData struct {
	FilePath    string
	AbsPath     string
	RelPath     string
	Stem        string
	Zone        string
	FrontendDir string
	BackendDir  string
}

var templateFuncs = template.FuncMap{
	"quote": shellescape.Quote,
}

// CheckRunner executes one command-backed check through a ProcessInvoker.
type CheckRunner struct {
	invoker   domain.ProcessInvoker
	cfg       domain.Config
	workDir   string
	templates map[domain.Toolchain]map[domain.CheckID]*template.Template
}

// NewCheckRunner parses every command template in cfg up front so that a broken
// template is reported at startup rather than mid-run.
func NewCheckRunner(invoker domain.ProcessInvoker, cfg domain.Config) (*CheckRunner, error) {
	workDir := cfg.WorkingDirectory
	if workDir == "" {
		workDir = "."
	}
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}

	r := &CheckRunner{
		invoker:   invoker,
		cfg:       cfg,
		workDir:   workDir,
		templates: make(map[domain.Toolchain]map[domain.CheckID]*template.Template),
	}

	for _, tc := range []domain.Toolchain{domain.ToolchainFrontend, domain.ToolchainBackend} {
		r.templates[tc] = make(map[domain.CheckID]*template.Template)
		commands := cfg.Commands(tc)
		for id := range commands {
			if !domain.IsCommandCheck(id) {
				return nil, fmt.Errorf("%w: %s_commands.%s: not a command check", domain.ErrTemplate, tc, id)
			}
		}
		for _, id := range domain.CommandCheckIDs {
			text := commands[id]
			if strings.TrimSpace(text) == "" {
				continue
			}
			tmpl, err := template.New(string(tc) + "." + string(id)).
				Funcs(templateFuncs).
				Option("missingkey=error").
				Parse(text)
			if err != nil {
				return nil, fmt.Errorf("%w: %s_commands.%s: %v", domain.ErrTemplate, tc, id, err)
			}
			r.templates[tc][id] = tmpl
		}
	}
	return r, nil
}

// WorkDir returns the absolute directory commands run in.
func (r *CheckRunner) WorkDir() string { return r.workDir }

// Run executes def for the file described by facts. A non-zero exit is a
// normal Failed outcome. The returned error is set only when the tool could not
// be run at all; the outcome then carries the rendered command.
func (r *CheckRunner) Run(ctx context.Context, def domain.CheckDefinition, facts domain.PathFacts) (domain.CheckOutcome, error) {
	out := domain.NewOutcome(def)

	tc := check.ToolchainFor(def.ID, facts)
	tmpl, ok := r.templates[tc][def.ID]
	if !ok {
		out.Status = domain.StatusSkipped
		out.Diagnostic = fmt.Sprintf("no %s command configured", tc)
		return out, nil
	}

	data := r.commandData(facts)
	command, err := render(tmpl, data)
	if err != nil {
		return out, err
	}
	out.Command = command

	ctx, span := startCheckSpan(ctx, def, facts)
	start := time.Now()
	res, err := r.invoker.Invoke(ctx, command, r.workDir)
	if err != nil {
		endCheckSpan(span, out, err)
		recordCheckMetrics(ctx, def, "fault", time.Since(start))
		return out, fmt.Errorf("running %s: %w", def.Name, err)
	}

	out.ExitCode = res.ExitCode
	switch {
	case res.ExitCode == 0 || def.IgnoreExitStatus:
		out.Status = domain.StatusPassed
	case def.FilterToTarget:
		lines := FilterDiagnostics(res.Stdout+"\n"+res.Stderr, MentionForms(data))
		if lines == "" {
			out.Status = domain.StatusPassed
		} else {
			out.Status = domain.StatusFailed
			out.Diagnostic = lines
		}
	default:
		out.Status = domain.StatusFailed
		out.Diagnostic = firstNonEmpty(res.Stderr, res.Stdout)
	}

	endCheckSpan(span, out, nil)
	recordCheckMetrics(ctx, def, string(out.Status), time.Since(start))
	return out, nil
}

func (r *CheckRunner) commandData(facts domain.PathFacts) CommandData {
	p := facts.Path
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.workDir, p)
	}
	rel := p
	if rr, err := filepath.Rel(r.workDir, abs); err == nil && !strings.HasPrefix(rr, "..") {
		rel = filepath.ToSlash(rr)
	}
	base := filepath.Base(p)

	zone := ""
	if facts.Zone != domain.ZoneUnclassified {
		zone = string(facts.Zone)
	}

	return CommandData{
		FilePath:    p,
		AbsPath:     abs,
		RelPath:     rel,
		Stem:        strings.TrimSuffix(base, filepath.Ext(base)),
		Zone:        zone,
		FrontendDir: r.cfg.FrontendDir,
		BackendDir:  r.cfg.BackendDir,
	}
}

func render(tmpl *template.Template, data CommandData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTemplate, tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// MentionForms lists the spellings under which a tool may refer to the target
// file: as given, absolute, relative to the working directory, and relative to
// the frontend project (where a global type-check runs).
func MentionForms(d CommandData) []string {
	candidates := []string{
		d.FilePath,
		d.AbsPath,
		d.RelPath,
		strings.TrimPrefix(d.RelPath, d.FrontendDir+"/"),
	}
	seen := make(map[string]bool, len(candidates))
	var forms []string
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		forms = append(forms, c)
	}
	return forms
}

// FilterDiagnostics keeps only the lines of output that mention one of forms.
// Errors that refer to the file without spelling its path are dropped.
func FilterDiagnostics(output string, forms []string) string {
	var kept []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		for _, f := range forms {
			if mentions(line, f) {
				kept = append(kept, line)
				break
			}
		}
	}
	return strings.Join(kept, "\n")
}

// mentions reports whether line names path as a diagnostic location: the path
// starts the line or follows whitespace, and is followed by "(" or ":".
// "src/components/index.ts(3,1)" therefore does not mention "index.ts".
func mentions(line, path string) bool {
	for from := 0; ; {
		i := strings.Index(line[from:], path)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(path)
		if (start == 0 || isSpace(line[start-1])) && end < len(line) && (line[end] == '(' || line[end] == ':') {
			return true
		}
		from = start + 1
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
