package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/editgate/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the editgate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start editgate MCP server (stdio)",
		Long:  "Start the editgate MCP server using stdio transport. This lets AI coding assistants validate files and inspect the configured checks on demand.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			logger, err := newLogger(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			mcpadapter.Version = version
			s := mcpadapter.NewEditGateMCPServer(projectPath, logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
