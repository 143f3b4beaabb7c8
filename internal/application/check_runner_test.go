package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/editgate/internal/domain"
	"github.com/abdidvp/editgate/internal/domain/check"
	"github.com/abdidvp/editgate/internal/domain/classify"
)

func definition(t *testing.T, id domain.CheckID) domain.CheckDefinition {
	t.Helper()
	for _, d := range check.DefaultRegistry().Checks() {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("no check %s", id)
	return domain.CheckDefinition{}
}

func TestCheckRunner_RendersTemplateFields(t *testing.T) {
	cfg := testConfig()
	cfg.FrontendCommands[domain.CheckLint] = "lint {{.FilePath}} {{.AbsPath}} {{.RelPath}} {{.Stem}} {{.Zone}} {{.FrontendDir}} {{.BackendDir}}"
	inv := newFakeInvoker()
	r, err := NewCheckRunner(inv, cfg)
	require.NoError(t, err)

	out, err := r.Run(context.Background(), definition(t, domain.CheckLint), classify.Classify("frontend/src/app.ts"))
	require.NoError(t, err)

	assert.Equal(t, "lint frontend/src/app.ts /work/frontend/src/app.ts frontend/src/app.ts app frontend frontend backend", out.Command)
	assert.Equal(t, domain.StatusPassed, out.Status)
}

func TestCheckRunner_QuoteEscapesPaths(t *testing.T) {
	cfg := testConfig()
	cfg.FrontendCommands[domain.CheckLint] = "lint {{quote .FilePath}}"
	r, err := NewCheckRunner(newFakeInvoker(), cfg)
	require.NoError(t, err)

	out, err := r.Run(context.Background(), definition(t, domain.CheckLint), classify.Classify("frontend/src/it's.ts"))
	require.NoError(t, err)

	assert.Equal(t, `lint 'frontend/src/it'"'"'s.ts'`, out.Command)
}

func TestCheckRunner_UnclassifiedZoneRendersEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.FrontendCommands[domain.CheckLint] = `cd {{if eq .Zone "frontend"}}{{.FrontendDir}}{{else}}.{{end}} && lint`
	r, err := NewCheckRunner(newFakeInvoker(), cfg)
	require.NoError(t, err)

	out, err := r.Run(context.Background(), definition(t, domain.CheckLint), classify.Classify("scripts/build.js"))
	require.NoError(t, err)
	assert.Equal(t, "cd . && lint", out.Command)

	out, err = r.Run(context.Background(), definition(t, domain.CheckLint), classify.Classify("frontend/build.js"))
	require.NoError(t, err)
	assert.Equal(t, "cd frontend && lint", out.Command)
}

func TestCheckRunner_StderrPreferredOverStdout(t *testing.T) {
	inv := newFakeInvoker().on("fe-lint", domain.ProcessResult{ExitCode: 1, Stdout: "out", Stderr: "err"})
	r, err := NewCheckRunner(inv, testConfig())
	require.NoError(t, err)

	out, err := r.Run(context.Background(), definition(t, domain.CheckLint), classify.Classify("frontend/a.js"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, 1, out.ExitCode)
	assert.Equal(t, "err", out.Diagnostic)
}

func TestCheckRunner_InvokerErrorIsReturned(t *testing.T) {
	inv := newFakeInvoker().fail("fe-lint", domain.ErrToolTimeout)
	r, err := NewCheckRunner(inv, testConfig())
	require.NoError(t, err)

	out, err := r.Run(context.Background(), definition(t, domain.CheckLint), classify.Classify("frontend/a.js"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolTimeout)
	assert.Equal(t, "fe-lint frontend/a.js", out.Command)
}

func TestNewCheckRunner_RejectsNonCommandCheck(t *testing.T) {
	cfg := testConfig()
	cfg.BackendCommands[domain.CheckSensitive] = "echo sensitive"

	_, err := NewCheckRunner(newFakeInvoker(), cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplate)
	assert.Contains(t, err.Error(), "backend_commands.sensitive")
}

func TestMentionForms(t *testing.T) {
	forms := MentionForms(CommandData{
		FilePath:    "frontend/src/a.ts",
		AbsPath:     "/work/frontend/src/a.ts",
		RelPath:     "frontend/src/a.ts",
		FrontendDir: "frontend",
	})

	assert.Equal(t, []string{"frontend/src/a.ts", "/work/frontend/src/a.ts", "src/a.ts"}, forms)
}

func TestFilterDiagnostics(t *testing.T) {
	output := "src/a.ts(1,2): error TS1\r\nsrc/b.ts(3,4): error TS2\n/work/frontend/src/a.ts:9 error TS3\n"

	got := FilterDiagnostics(output, []string{"src/a.ts", "/work/frontend/src/a.ts"})

	assert.Equal(t, "src/a.ts(1,2): error TS1\n/work/frontend/src/a.ts:9 error TS3", got)
}

func TestFilterDiagnostics_PathMustBeWholeLocation(t *testing.T) {
	output := strings.Join([]string{
		"src/components/index.ts(3,1): error TS2322: Type 'string' is not assignable.",
		"lib/index.ts:4:2 - error TS2304",
		"  index.ts(7,1): error TS1005",
		"error in index.ts.bak(1,1)",
		"index.ts: error TS6053",
	}, "\n")

	got := FilterDiagnostics(output, []string{"index.ts"})

	assert.Equal(t, "  index.ts(7,1): error TS1005\nindex.ts: error TS6053", got)
}

// Continuation lines that only carry a position are not attributed to the file.
func TestFilterDiagnostics_DropsLinesWithoutPath(t *testing.T) {
	output := "src/a.ts(1,2): error TS2345: Argument of type\n  '{ id: number }' is not assignable.\n"

	got := FilterDiagnostics(output, []string{"src/a.ts"})

	assert.Equal(t, "src/a.ts(1,2): error TS2345: Argument of type", got)
}

func TestFilterDiagnostics_NoMatch(t *testing.T) {
	assert.Empty(t, FilterDiagnostics("src/b.ts(1,1): error\n", []string{"src/a.ts"}))
	assert.Empty(t, FilterDiagnostics("", []string{"src/a.ts"}))
}
