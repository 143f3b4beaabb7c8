package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/wiring"
)

// registerResources registers all editgate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, logger *zap.SugaredLogger) {
	// 1. editgate://checks - the check registry in execution order
	s.AddResource(
		mcplib.NewResource(
			"editgate://checks",
			"Checks",
			mcplib.WithResourceDescription("Registered post-edit checks in execution order, with severity"),
			mcplib.WithMIMEType("application/json"),
		),
		handleChecksResource(projectPath, logger),
	)

	// 2. editgate://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"editgate://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective configuration after merging .editgate.yaml over the defaults"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, logger),
	)
}

func handleChecksResource(projectPath string, logger *zap.SugaredLogger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		svc, err := wiring.NewValidateService(projectPath, logger)
		if err != nil {
			return nil, fmt.Errorf("loading configuration failed: %w", err)
		}
		return jsonResource("editgate://checks", svc.Registry().Checks())
	}
}

func handleConfigResource(projectPath string, logger *zap.SugaredLogger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		svc, err := wiring.NewValidateService(projectPath, logger)
		if err != nil {
			return nil, fmt.Errorf("loading configuration failed: %w", err)
		}
		return jsonResource("editgate://config", svc.Config())
	}
}

func jsonResource(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
