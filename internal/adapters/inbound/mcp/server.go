package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is reported to MCP clients.
var Version = "dev"

// NewEditGateMCPServer creates a new MCP server with all editgate tools and
// resources registered. The projectPath is the root directory whose
// .editgate.yaml configures validation. Configuration is re-read on every call.
func NewEditGateMCPServer(projectPath string, logger *zap.SugaredLogger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := server.NewMCPServer(
		"editgate",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, logger)
	registerResources(s, projectPath, logger)

	return s
}
