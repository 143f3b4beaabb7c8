// Package wiring connects the validation service to the outbound adapters. The
// CLI and the MCP server both build their service here.
package wiring

import (
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/adapters/outbound/config"
	"github.com/abdidvp/editgate/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/editgate/internal/adapters/outbound/shell"
	"github.com/abdidvp/editgate/internal/application"
	"github.com/abdidvp/editgate/internal/domain"
)

// NewValidateService loads .editgate.yaml from projectPath and wires the
// validation service with the shell invoker and the git inspector.
func NewValidateService(projectPath string, logger *zap.SugaredLogger) (*application.ValidateService, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return application.LoadValidateService(config.New(), projectPath,
		func(cfg domain.Config) domain.ProcessInvoker {
			return shell.New(
				shell.WithTimeout(cfg.ToolTimeout),
				shell.WithLogger(logger),
			)
		},
		application.WithLogger(logger),
		application.WithGitInspector(gitinfo.New()),
	)
}
