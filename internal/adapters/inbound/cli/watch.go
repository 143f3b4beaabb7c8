package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdidvp/editgate/internal/adapters/outbound/watcher"
	"github.com/abdidvp/editgate/internal/domain"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		format   string
		quiet    time.Duration
		cooldown time.Duration
		exclude  []string
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Validate files as they are written",
		Long: "Watch a project tree and run the post-edit checks for every file written under it. Writes made " +
			"by the checks themselves (auto-fixers, formatters) within the cooldown are not validated again.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			outFormat, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}

			logger, err := newLogger(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc, err := newService(root, logger)
			if err != nil {
				return err
			}

			w, err := watcher.New(root,
				watcher.WithQuietPeriod(quiet),
				watcher.WithExclude(exclude...),
				watcher.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			lastRun := make(map[string]time.Time)
			return w.Run(ctx, func(ctx context.Context, paths []string) {
				for _, rel := range paths {
					p := targetPath(svc.WorkDir(), filepath.Join(root, rel))
					if at, ok := lastRun[p]; ok && time.Since(at) < cooldown {
						logger.Debugw("skipping write inside cooldown", "file", p)
						continue
					}
					if _, plan := svc.Plan(p); len(plan) == 0 {
						continue
					}

					v := svc.Validate(ctx, domain.Invocation{Tool: domain.ToolWrite, FilePath: p})
					lastRun[p] = time.Now()
					if err := renderVerdicts(cmd, outFormat, []domain.Verdict{v}, false); err != nil {
						logger.Warnw("rendering verdict", "error", err)
					}
				}
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format: auto, text or json")
	cmd.Flags().DurationVar(&quiet, "quiet-period", watcher.DefaultQuietPeriod, "How long a file must stay unchanged before it is validated")
	cmd.Flags().DurationVar(&cooldown, "cooldown", 2*time.Second, "Ignore writes to a file this long after validating it")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Additional directories to skip")

	return cmd
}
