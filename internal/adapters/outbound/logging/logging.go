// Package logging builds the process logger. Logs always go to stderr so that
// stdout stays reserved for the hook response.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a console logger. Debug mode logs everything; otherwise only
// warnings and errors are written.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger.Sugar(), nil
}
