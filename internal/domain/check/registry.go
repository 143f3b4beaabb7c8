package check

import "github.com/abdidvp/editgate/internal/domain"

// Check display names.
const (
	NameLint           = "Lint"
	NameTypeCheck      = "Type-check"
	NameFormat         = "Format"
	NameTest           = "Test execution"
	NameSensitive      = "Sensitive-file advisory"
	NameStaticAnalysis = "Static analysis"
)

// Registry is the ordered list of check definitions. Order is significant:
// outcomes and their messages are reported in registry order.
type Registry struct {
	checks []domain.CheckDefinition
}

// NewRegistry creates a registry with checks in the given order.
func NewRegistry(checks ...domain.CheckDefinition) *Registry {
	return &Registry{checks: append([]domain.CheckDefinition(nil), checks...)}
}

// DefaultRegistry returns the standard post-edit checks.
func DefaultRegistry() *Registry {
	return NewRegistry(
		domain.CheckDefinition{
			ID:       domain.CheckLint,
			Name:     NameLint,
			Applies:  func(f domain.PathFacts) bool { return f.IsScript() || f.IsBackendPHP() },
			Action:   domain.ActionCommand,
			Severity: domain.SeverityAdvisory,
			Hint:     "Re-run the linter with auto-fix and resolve what remains.",
		},
		domain.CheckDefinition{
			ID:             domain.CheckTypeCheck,
			Name:           NameTypeCheck,
			Applies:        func(f domain.PathFacts) bool { return f.Language == domain.LanguageTypeScript },
			Action:         domain.ActionCommand,
			Severity:       domain.SeverityBlocking,
			FilterToTarget: true,
			Hint:           "Fix these type errors before deployment.",
		},
		domain.CheckDefinition{
			ID:               domain.CheckFormat,
			Name:             NameFormat,
			Applies:          func(f domain.PathFacts) bool { return f.IsScript() },
			Action:           domain.ActionCommand,
			Severity:         domain.SeverityAdvisory,
			IgnoreExitStatus: true,
		},
		domain.CheckDefinition{
			ID:       domain.CheckTest,
			Name:     NameTest,
			Applies:  func(f domain.PathFacts) bool { return f.IsTestFile && f.InZone() },
			Action:   domain.ActionCommand,
			Severity: domain.SeverityBlocking,
			Hint:     "Fix failing tests before deployment.",
		},
		domain.CheckDefinition{
			ID:       domain.CheckSensitive,
			Name:     NameSensitive,
			Applies:  func(f domain.PathFacts) bool { return f.IsSensitive },
			Action:   domain.ActionAdvisory,
			Severity: domain.SeverityAdvisory,
			Terminal: true,
		},
		domain.CheckDefinition{
			ID:       domain.CheckStaticAnalysis,
			Name:     NameStaticAnalysis,
			Applies:  func(f domain.PathFacts) bool { return f.IsBackendPHP() },
			Action:   domain.ActionCommand,
			Severity: domain.SeverityAdvisory,
			Hint:     "Consider fixing these issues.",
		},
	)
}

// Checks returns a copy of all registered definitions.
func (r *Registry) Checks() []domain.CheckDefinition {
	return append([]domain.CheckDefinition(nil), r.checks...)
}

// Applicable returns the checks that apply to facts, in registry order. When a
// terminal check applies, it is the whole plan.
func (r *Registry) Applicable(facts domain.PathFacts) []domain.CheckDefinition {
	var plan []domain.CheckDefinition
	for _, c := range r.checks {
		if c.Applies == nil || !c.Applies(facts) {
			continue
		}
		if c.Terminal {
			return []domain.CheckDefinition{c}
		}
		plan = append(plan, c)
	}
	return plan
}

// ToolchainFor picks the command template set for a check. Tests follow the
// file's zone; PHP belongs to the backend toolchain; everything else runs on the
// frontend toolchain.
func ToolchainFor(id domain.CheckID, facts domain.PathFacts) domain.Toolchain {
	if id == domain.CheckTest {
		if facts.Zone == domain.ZoneBackend {
			return domain.ToolchainBackend
		}
		return domain.ToolchainFrontend
	}
	if facts.Language == domain.LanguagePHP {
		return domain.ToolchainBackend
	}
	return domain.ToolchainFrontend
}
