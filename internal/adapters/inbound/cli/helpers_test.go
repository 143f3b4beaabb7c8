package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/editgate/internal/adapters/inbound/cli"
)

// fixtureConfig uses shell builtins so that the tests do not depend on any
// JavaScript or PHP toolchain.
const fixtureConfig = `
frontend_commands:
  lint: "true"
  typecheck: "echo 'src/other.ts(1,1): error TS1005' ; exit 2"
  format: "true"
  test: "echo '1 failing' >&2; exit 1"
backend_commands:
  lint: "true"
  test: "true"
  static_analysis: "echo 'Line 3: undefined variable $x'; exit 1"
`

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editgate.yaml"), []byte(fixtureConfig), 0644))
	for _, f := range []string{"frontend/src/app.ts", "frontend/src/app.test.ts", "backend/app/Pay.php", "docs/readme.md"} {
		p := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	return dir
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
