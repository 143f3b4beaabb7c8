package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/domain"
	"github.com/abdidvp/editgate/internal/wiring"
)

// registerTools registers all editgate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *zap.SugaredLogger) {
	// 1. editgate_validate
	s.AddTool(
		mcplib.NewTool("editgate_validate",
			mcplib.WithDescription("Run the post-edit checks for a file and return the verdict: whether the change may proceed, blocking and advisory issues, and a summary message"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the edited file, absolute or relative to the project root"),
			),
			mcplib.WithString("tool",
				mcplib.Description("Editing tool that produced the change: Edit, Write or MultiEdit (default: Edit)"),
			),
		),
		handleValidate(projectPath, logger),
	)

	// 2. editgate_classify
	s.AddTool(
		mcplib.NewTool("editgate_classify",
			mcplib.WithDescription("Classify a path (language, zone, test file, sensitive) and list the checks that would run for it, without running anything"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to classify"),
			),
		),
		handleClassify(projectPath, logger),
	)
}

func handleValidate(projectPath string, logger *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		tool := request.GetString("tool", string(domain.ToolEdit))

		svc, err := wiring.NewValidateService(projectPath, logger)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration failed: %v", err)), nil
		}

		verdict := svc.Validate(ctx, domain.Invocation{Tool: domain.ParseToolName(tool), FilePath: file})
		return jsonResult(verdict)
	}
}

// Plan is the classify tool result.
type Plan struct {
	Facts  domain.PathFacts         `json:"facts"`
	Checks []domain.CheckDefinition `json:"checks"`
}

func handleClassify(projectPath string, logger *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, err := wiring.NewValidateService(projectPath, logger)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration failed: %v", err)), nil
		}

		facts, checks := svc.Plan(file)
		if checks == nil {
			checks = []domain.CheckDefinition{}
		}
		return jsonResult(Plan{Facts: facts, Checks: checks})
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
