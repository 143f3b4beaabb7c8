package domain

import "context"

// ProcessResult is what an external tool reported.
type ProcessResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// ProcessInvoker runs a shell command in a working directory. A non-zero exit
// is a normal result; an error means the command could not be run at all.
type ProcessInvoker interface {
	Invoke(ctx context.Context, command, workDir string) (ProcessResult, error)
}

// ConfigLoader loads the hook configuration for a project.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// GitStatus describes how git treats a file.
type GitStatus struct {
	InRepo  bool `json:"in_repo"`
	Ignored bool `json:"ignored"`
	Tracked bool `json:"tracked"`
}

// GitInspector reports the git status of a file.
type GitInspector interface {
	Inspect(workDir, filePath string) (GitStatus, error)
}
