package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/adapters/outbound/logging"
	"github.com/abdidvp/editgate/internal/application"
	"github.com/abdidvp/editgate/internal/wiring"
)

// newLogger builds the stderr logger for a command run.
func newLogger(opts *globalOptions) (*zap.SugaredLogger, error) {
	return logging.New(opts.debug)
}

// newService loads .editgate.yaml from projectPath and wires the validation
// service.
func newService(projectPath string, logger *zap.SugaredLogger) (*application.ValidateService, error) {
	return wiring.NewValidateService(projectPath, logger)
}

// targetPath resolves p against the process working directory and expresses it
// relative to workDir, where the service resolves relative paths. Files outside
// workDir stay absolute.
func targetPath(workDir, p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(workDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

const (
	formatAuto = "auto"
	formatText = "text"
	formatJSON = "json"
)

// resolveFormat turns "auto" into text for terminals and JSON otherwise.
func resolveFormat(cmd *cobra.Command, format string) (string, error) {
	switch format {
	case formatText, formatJSON:
		return format, nil
	case formatAuto, "":
		if f, ok := cmd.OutOrStdout().(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: auto, text, json)", format)
	}
}
