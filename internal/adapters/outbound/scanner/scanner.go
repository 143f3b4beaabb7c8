package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/editgate/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"bin":          true,
	"coverage":     true,
	".next":        true,
	".idea":        true,
}

// FileScanner walks a project tree, skipping dependency and build output.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects directories and files under projectPath. Names in
// excludePaths are skipped in addition to the built-in list.
func (s *FileScanner) Scan(projectPath string, excludePaths ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relPath]) {
				return filepath.SkipDir
			}
			result.Dirs = append(result.Dirs, relPath)
			return nil
		}

		if extraSkip[relPath] {
			return nil
		}
		result.Files = append(result.Files, relPath)
		return nil
	})

	return result, err
}

// Skipped reports whether a directory name is excluded from every walk.
func Skipped(name string) bool {
	return skipDirs[name]
}
