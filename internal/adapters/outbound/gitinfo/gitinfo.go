package gitinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/format/index"

	"github.com/abdidvp/editgate/internal/domain"
)

// Inspector implements domain.GitInspector using go-git.
type Inspector struct{}

func New() *Inspector {
	return &Inspector{}
}

// Inspect reports whether filePath is ignored by .gitignore and whether it is
// already in the index of the repository enclosing workDir.
func (g *Inspector) Inspect(workDir, filePath string) (domain.GitStatus, error) {
	if st, err := os.Stat(workDir); err != nil || !st.IsDir() {
		return domain.GitStatus{}, fmt.Errorf("%w: %s", domain.ErrWorkDirInvalid, workDir)
	}

	repo, err := git.PlainOpenWithOptions(workDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return domain.GitStatus{}, nil
		}
		return domain.GitStatus{}, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to compare against.
		return domain.GitStatus{}, nil
	}

	rel, ok := relativeTo(wt.Filesystem.Root(), workDir, filePath)
	if !ok {
		return domain.GitStatus{}, nil
	}
	st := domain.GitStatus{InRepo: true}

	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return st, fmt.Errorf("reading .gitignore: %w", err)
	}
	st.Ignored = gitignore.NewMatcher(patterns).Match(strings.Split(rel, "/"), false)

	idx, err := repo.Storer.Index()
	if err != nil {
		return st, fmt.Errorf("reading index: %w", err)
	}
	if _, err := idx.Entry(rel); err == nil {
		st.Tracked = true
	} else if !errors.Is(err, index.ErrEntryNotFound) {
		return st, fmt.Errorf("reading index: %w", err)
	}

	return st, nil
}

// relativeTo returns filePath relative to the repository root in slash form.
func relativeTo(root, workDir, filePath string) (string, bool) {
	abs := filePath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(workDir, filePath)
	}
	if rel, ok := within(root, abs); ok {
		return rel, true
	}
	// The root may be reported through a symlinked temp or home directory.
	return within(evalSymlinks(root), evalSymlinks(abs))
}

func within(root, abs string) (string, bool) {
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// evalSymlinks resolves the longest existing prefix of p.
func evalSymlinks(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	parent := filepath.Dir(p)
	if parent == p {
		return p
	}
	return filepath.Join(evalSymlinks(parent), filepath.Base(p))
}
