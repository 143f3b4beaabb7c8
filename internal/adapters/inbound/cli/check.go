package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/editgate/internal/adapters/outbound/scanner"
	"github.com/abdidvp/editgate/internal/adapters/outbound/tui"
	"github.com/abdidvp/editgate/internal/application"
	"github.com/abdidvp/editgate/internal/domain"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		projectPath string
		tool        string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "check <file|dir> [file|dir]...",
		Short: "Run the post-edit checks for files without a hook event",
		Long: "Validate files as if an agent had just written them. Directories are expanded to the files that " +
			"have at least one applicable check. Exits non-zero when any file is blocked.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}

			logger, err := newLogger(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc, err := newService(projectPath, logger)
			if err != nil {
				return err
			}

			files, expanded, err := expandTargets(svc, args)
			if err != nil {
				return err
			}

			toolName := domain.ParseToolName(tool)
			verdicts := make([]domain.Verdict, 0, len(files))
			for _, f := range files {
				verdicts = append(verdicts, svc.Validate(cmd.Context(), domain.Invocation{Tool: toolName, FilePath: f}))
			}

			if err := renderVerdicts(cmd, outFormat, verdicts, expanded || len(args) > 1); err != nil {
				return err
			}

			blocked := 0
			for _, v := range verdicts {
				if !v.Proceed {
					blocked++
				}
			}
			if blocked > 0 {
				return fmt.Errorf("validation blocked for %d of %d file(s)", blocked, len(verdicts))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root holding .editgate.yaml")
	cmd.Flags().StringVar(&tool, "tool", string(domain.ToolEdit), "Editing tool to report (Edit, Write, MultiEdit)")
	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format: auto, text or json")

	return cmd
}

// expandTargets replaces directories with the files under them that some check
// applies to. Arguments are relative to the process working directory; the
// returned paths are relative to the service's working directory. It reports
// whether any directory was expanded.
func expandTargets(svc *application.ValidateService, args []string) ([]string, bool, error) {
	var files []string
	expanded := false
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			// Missing files are still classified; deleted paths may be sensitive.
			files = append(files, targetPath(svc.WorkDir(), arg))
			continue
		}

		expanded = true
		scan, err := scanner.New().Scan(arg)
		if err != nil {
			return nil, false, fmt.Errorf("scanning %s: %w", arg, err)
		}
		for _, rel := range scan.Files {
			p := targetPath(svc.WorkDir(), filepath.Join(arg, rel))
			if _, plan := svc.Plan(p); len(plan) > 0 {
				files = append(files, p)
			}
		}
	}
	return files, expanded, nil
}

// renderVerdicts writes verdicts as text or JSON. JSON output is an array when
// asList is set and a single object otherwise.
func renderVerdicts(cmd *cobra.Command, format string, verdicts []domain.Verdict, asList bool) error {
	if format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if !asList && len(verdicts) == 1 {
			return enc.Encode(verdicts[0])
		}
		return enc.Encode(verdicts)
	}

	for _, v := range verdicts {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderVerdict(v))
	}
	return nil
}
