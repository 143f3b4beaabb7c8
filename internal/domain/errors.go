package domain

import "errors"

var (
	// ErrToolUnavailable means the shell could not find or execute the tool.
	ErrToolUnavailable = errors.New("tool unavailable")
	// ErrWorkDirInvalid means the configured working directory cannot be used.
	ErrWorkDirInvalid = errors.New("working directory invalid")
	// ErrToolTimeout means the tool did not finish within the configured timeout.
	ErrToolTimeout = errors.New("tool timed out")
	// ErrTemplate means a command template could not be parsed or rendered.
	ErrTemplate = errors.New("command template")
)
