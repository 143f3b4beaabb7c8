package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/editgate/internal/domain"
)

// FileName is the per-project configuration file.
const FileName = ".editgate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .editgate.yaml.
type YAMLLoader struct{}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// fileConfig mirrors domain.Config with every field optional, so that absent
// keys keep their defaults.
type fileConfig struct {
	WorkingDirectory  *string                   `yaml:"working_directory"`
	FrontendDir       *string                   `yaml:"frontend_dir"`
	BackendDir        *string                   `yaml:"backend_dir"`
	FrontendCommands  map[domain.CheckID]string `yaml:"frontend_commands"`
	BackendCommands   map[domain.CheckID]string `yaml:"backend_commands"`
	SensitiveKeywords *[]string                 `yaml:"sensitive_keywords"`
	ToolTimeout       *time.Duration            `yaml:"tool_timeout"`
	StopOnBlocking    *bool                     `yaml:"stop_on_blocking"`
}

// Load reads .editgate.yaml from projectPath.
// Returns DefaultConfig if the file does not exist. A relative
// working_directory is resolved against projectPath.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.WorkingDirectory = resolveWorkDir(projectPath, "")
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var raw fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg = merge(cfg, raw)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	cfg.WorkingDirectory = resolveWorkDir(projectPath, cfg.WorkingDirectory)
	return cfg, nil
}

// merge overlays explicit values from the file on top of base. Command maps are
// merged per key; an explicit empty template disables that check.
func merge(base domain.Config, raw fileConfig) domain.Config {
	result := base

	if raw.WorkingDirectory != nil {
		result.WorkingDirectory = *raw.WorkingDirectory
	}
	if raw.FrontendDir != nil {
		result.FrontendDir = *raw.FrontendDir
	}
	if raw.BackendDir != nil {
		result.BackendDir = *raw.BackendDir
	}
	result.FrontendCommands = mergeCommands(base.FrontendCommands, raw.FrontendCommands)
	result.BackendCommands = mergeCommands(base.BackendCommands, raw.BackendCommands)
	if raw.SensitiveKeywords != nil {
		result.SensitiveKeywords = *raw.SensitiveKeywords
	}
	if raw.ToolTimeout != nil {
		result.ToolTimeout = *raw.ToolTimeout
	}
	if raw.StopOnBlocking != nil {
		result.StopOnBlocking = *raw.StopOnBlocking
	}
	return result
}

func mergeCommands(base, override map[domain.CheckID]string) map[domain.CheckID]string {
	out := make(map[domain.CheckID]string, len(base)+len(override))
	for id, tmpl := range base {
		out[id] = tmpl
	}
	for id, tmpl := range override {
		out[id] = tmpl
	}
	return out
}

func resolveWorkDir(projectPath, dir string) string {
	if dir == "" || dir == "." {
		return projectPath
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(projectPath, dir)
}

const header = `# editgate configuration.
#
# Command templates are Go text/template strings. Available fields:
#   .FilePath .AbsPath .RelPath .Stem .Zone .FrontendDir .BackendDir
# and the function quote, which shell-quotes its argument.
# An empty template disables that check; a missing key keeps the default.
# Valid check keys: lint, typecheck, format, test, static_analysis.

`

// Write stores cfg as .editgate.yaml in projectPath. It refuses to replace an
// existing file unless force is set.
func Write(projectPath string, cfg domain.Config, force bool) (string, error) {
	path := filepath.Join(projectPath, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", FileName)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return path, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return path, fmt.Errorf("writing %s: %w", FileName, err)
	}
	return path, nil
}
