package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "editgate",
		Short: "Quality gates for files written by coding agents",
		Long: "editgate runs lint, type-check, format, test and static-analysis tools on a file right after an agent " +
			"edits it, and reports whether the change may proceed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write debug logs to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newHookCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newClassifyCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// ExitError makes the process exit with Code. Its message has already been
// written by the command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
