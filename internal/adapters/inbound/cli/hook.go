package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/domain"
)

// hookEvent is the post-tool-use event the host writes to stdin.
type hookEvent struct {
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		FilePath string `json:"file_path"`
		Path     string `json:"path"`
	} `json:"tool_input"`
	Cwd string `json:"cwd"`
}

func (e hookEvent) invocation() domain.Invocation {
	path := e.ToolInput.FilePath
	if path == "" {
		path = e.ToolInput.Path
	}
	return domain.Invocation{Tool: domain.ParseToolName(e.ToolName), FilePath: path}
}

// hookResponse is written to stdout.
type hookResponse struct {
	Blocking bool           `json:"blocking"`
	Message  string         `json:"message"`
	Verdict  domain.Verdict `json:"verdict"`
}

// exitBlocked is the host's convention for "feed stderr back to the agent".
const exitBlocked = 2

func newHookCmd(opts *globalOptions) *cobra.Command {
	var (
		projectPath string
		failOnBlock bool
	)

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Validate the file named by a post-edit hook event on stdin",
		Long: "Read a post-tool-use event ({\"tool_name\", \"tool_input\": {\"file_path\"}, \"cwd\"}) from stdin, " +
			"run the checks that apply to the written file and print the verdict as JSON. Events for tools that do " +
			"not write files, and malformed events, produce a verdict that lets the change proceed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			event, ok := readEvent(cmd.InOrStdin(), logger)
			if !ok {
				return writeHookResponse(cmd, domain.NoOpVerdict())
			}

			path := projectPath
			if path == "" {
				path = event.Cwd
			}
			if path == "" {
				path = "."
			}

			svc, err := newService(path, logger)
			if err != nil {
				return err
			}

			verdict := svc.Validate(cmd.Context(), event.invocation())
			if err := writeHookResponse(cmd, verdict); err != nil {
				return err
			}

			if failOnBlock && !verdict.Proceed {
				fmt.Fprintln(cmd.ErrOrStderr(), verdict.Message)
				return &ExitError{Code: exitBlocked}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project root holding .editgate.yaml (defaults to the event's cwd)")
	cmd.Flags().BoolVar(&failOnBlock, "fail-on-block", false, "Exit with status 2 and print the message to stderr when the change is blocked")

	return cmd
}

func readEvent(r io.Reader, logger *zap.SugaredLogger) (hookEvent, bool) {
	var event hookEvent
	data, err := io.ReadAll(r)
	if err != nil {
		logger.Warnw("reading hook event", "error", err)
		return event, false
	}
	if err := json.Unmarshal(data, &event); err != nil {
		logger.Warnw("malformed hook event", "error", err)
		return event, false
	}
	return event, true
}

func writeHookResponse(cmd *cobra.Command, v domain.Verdict) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	return enc.Encode(hookResponse{
		Blocking: !v.Proceed,
		Message:  v.Message,
		Verdict:  v,
	})
}
