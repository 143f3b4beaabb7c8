package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/editgate/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/editgate/internal/domain"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	return dir
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestInspect_NotGitRepo(t *testing.T) {
	dir := t.TempDir()

	st, err := gitinfo.New().Inspect(dir, "backend/.env")
	require.NoError(t, err)
	assert.False(t, st.InRepo)
}

func TestInspect_IgnoredUntracked(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, ".gitignore", ".env\n")
	writeFile(t, dir, "backend/.env", "SECRET=1")

	st, err := gitinfo.New().Inspect(dir, "backend/.env")
	require.NoError(t, err)
	assert.True(t, st.InRepo)
	assert.True(t, st.Ignored)
	assert.False(t, st.Tracked)
}

func TestInspect_TrackedNotIgnored(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "config/secrets.php", "<?php return [];")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")

	st, err := gitinfo.New().Inspect(dir, filepath.Join(dir, "config/secrets.php"))
	require.NoError(t, err)
	assert.True(t, st.InRepo)
	assert.False(t, st.Ignored)
	assert.True(t, st.Tracked)
}

func TestInspect_NestedIgnoreFile(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "frontend/.gitignore", "*.key\n")

	st, err := gitinfo.New().Inspect(filepath.Join(dir, "frontend"), "certs/server.key")
	require.NoError(t, err)
	assert.True(t, st.InRepo)
	assert.True(t, st.Ignored)
}

func TestInspect_MissingWorkDir(t *testing.T) {
	_, err := gitinfo.New().Inspect(filepath.Join(t.TempDir(), "missing"), ".env")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWorkDirInvalid)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
