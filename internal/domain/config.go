package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Toolchain selects which command template set serves a check.
type Toolchain string

const (
	ToolchainFrontend Toolchain = "frontend"
	ToolchainBackend  Toolchain = "backend"
)

// DefaultSensitiveKeywords are matched case-insensitively anywhere in a path.
var DefaultSensitiveKeywords = []string{
	".env", "password", "secret", "key", "token", "credential", "api_key", "private",
}

// DefaultToolTimeout bounds a single external tool run.
const DefaultToolTimeout = 5 * time.Minute

// Config holds hook configuration loaded from .editgate.yaml.
type Config struct {
	WorkingDirectory  string             `yaml:"working_directory"  json:"working_directory"`
	FrontendDir       string             `yaml:"frontend_dir"       json:"frontend_dir"       validate:"required,excludesall=/\\"`
	BackendDir        string             `yaml:"backend_dir"        json:"backend_dir"        validate:"required,excludesall=/\\,nefield=FrontendDir"`
	FrontendCommands  map[CheckID]string `yaml:"frontend_commands"  json:"frontend_commands"  validate:"dive,keys,oneof=lint typecheck format test static_analysis,endkeys"`
	BackendCommands   map[CheckID]string `yaml:"backend_commands"   json:"backend_commands"   validate:"dive,keys,oneof=lint typecheck format test static_analysis,endkeys"`
	SensitiveKeywords []string           `yaml:"sensitive_keywords" json:"sensitive_keywords" validate:"dive,required"`
	ToolTimeout       time.Duration      `yaml:"tool_timeout"       json:"tool_timeout"       validate:"gte=0"`
	StopOnBlocking    bool               `yaml:"stop_on_blocking"   json:"stop_on_blocking"`
}

// DefaultConfig reproduces the commands of the original post-edit hook.
func DefaultConfig() Config {
	return Config{
		WorkingDirectory: ".",
		FrontendDir:      "frontend",
		BackendDir:       "backend",
		FrontendCommands: map[CheckID]string{
			CheckLint:      `cd {{if eq .Zone "frontend"}}{{.FrontendDir}}{{else}}.{{end}} && npx eslint {{quote .AbsPath}} --fix`,
			CheckTypeCheck: `cd {{.FrontendDir}} && npx tsc --noEmit --skipLibCheck`,
			CheckFormat:    `cd {{.FrontendDir}} && npx prettier --write {{quote .AbsPath}}`,
			CheckTest:      `cd {{.FrontendDir}} && npm test -- {{quote .AbsPath}}`,
		},
		BackendCommands: map[CheckID]string{
			CheckLint:           `cd {{.BackendDir}} && ./vendor/bin/pint {{quote .AbsPath}}`,
			CheckTest:           `cd {{.BackendDir}} && php artisan test --filter={{quote .Stem}}`,
			CheckStaticAnalysis: `cd {{.BackendDir}} && ./vendor/bin/phpstan analyse {{quote .AbsPath}} --level=5`,
		},
		SensitiveKeywords: append([]string(nil), DefaultSensitiveKeywords...),
		ToolTimeout:       DefaultToolTimeout,
	}
}

// Commands returns the template set of a toolchain.
func (c Config) Commands(tc Toolchain) map[CheckID]string {
	if tc == ToolchainBackend {
		return c.BackendCommands
	}
	return c.FrontendCommands
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describeFieldError(verrs[0])
		}
		return err
	}
	return nil
}

func describeFieldError(fe validator.FieldError) error {
	field := yamlFieldName(fe.StructNamespace())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", field)
	case "excludesall":
		return fmt.Errorf("%s must be a single path segment (got %q)", field, fe.Value())
	case "nefield":
		return fmt.Errorf("%s must differ from frontend_dir", field)
	case "oneof":
		return fmt.Errorf("unknown check %q in %s (valid: %s)", fe.Value(), field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Errorf("%s must not be negative", field)
	default:
		return fmt.Errorf("%s failed %q validation", field, fe.Tag())
	}
}

var yamlNames = map[string]string{
	"WorkingDirectory":  "working_directory",
	"FrontendDir":       "frontend_dir",
	"BackendDir":        "backend_dir",
	"FrontendCommands":  "frontend_commands",
	"BackendCommands":   "backend_commands",
	"SensitiveKeywords": "sensitive_keywords",
	"ToolTimeout":       "tool_timeout",
}

// yamlFieldName turns "Config.FrontendCommands[lint]" into "frontend_commands".
func yamlFieldName(namespace string) string {
	name := strings.TrimPrefix(namespace, "Config.")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if y, ok := yamlNames[name]; ok {
		return y
	}
	return name
}
