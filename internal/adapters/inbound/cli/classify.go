package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/editgate/internal/adapters/outbound/tui"
	"github.com/abdidvp/editgate/internal/domain"
)

type classification struct {
	Facts  domain.PathFacts `json:"facts"`
	Checks []string         `json:"checks"`
}

func newClassifyCmd(opts *globalOptions) *cobra.Command {
	var (
		projectPath string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Show how a path is classified and which checks would run",
		Args:  cobra.ExactArgs(1),
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

			facts, plan := svc.Plan(targetPath(svc.WorkDir(), args[0]))
			if outFormat == formatText {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(facts, plan))
				return nil
			}

			out := classification{Facts: facts, Checks: []string{}}
			for _, d := range plan {
				out.Checks = append(out.Checks, d.Name)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root holding .editgate.yaml")
	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format: auto, text or json")

	return cmd
}
