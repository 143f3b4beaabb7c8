package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/editgate/internal/adapters/outbound/config"
	"github.com/abdidvp/editgate/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		frontendDir string
		backendDir  string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .editgate.yaml configuration file",
		Long:  "Create a .editgate.yaml holding the default command templates, ready to adapt to your toolchain.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := domain.DefaultConfig()
			cfg.FrontendDir = frontendDir
			cfg.BackendDir = backendDir
			if err := cfg.Validate(); err != nil {
				return err
			}

			if _, err := config.Write(absPath, cfg, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&frontendDir, "frontend-dir", "frontend", "Directory name of the JavaScript/TypeScript project")
	cmd.Flags().StringVar(&backendDir, "backend-dir", "backend", "Directory name of the PHP project")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .editgate.yaml")

	return cmd
}
