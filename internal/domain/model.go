package domain

// CheckID is the stable identifier of a check. It keys command templates in
// configuration.
type CheckID string

const (
	CheckLint           CheckID = "lint"
	CheckTypeCheck      CheckID = "typecheck"
	CheckFormat         CheckID = "format"
	CheckTest           CheckID = "test"
	CheckSensitive      CheckID = "sensitive"
	CheckStaticAnalysis CheckID = "static_analysis"
)

// CommandCheckIDs lists the checks that run an external command, in registry order.
var CommandCheckIDs = []CheckID{
	CheckLint, CheckTypeCheck, CheckFormat, CheckTest, CheckStaticAnalysis,
}

// IsCommandCheck reports whether id names a check backed by a command template.
func IsCommandCheck(id CheckID) bool {
	for _, c := range CommandCheckIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Severity decides whether a failed check prevents the change from proceeding.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityAdvisory Severity = "advisory"
)

// CheckStatus is the result of running one check.
type CheckStatus string

const (
	StatusPassed  CheckStatus = "passed"
	StatusFailed  CheckStatus = "failed"
	StatusSkipped CheckStatus = "skipped"
)

// ActionKind describes how a check is carried out.
type ActionKind string

const (
	// ActionCommand runs an external tool through the process invoker.
	ActionCommand ActionKind = "command"
	// ActionAdvisory produces its outcome without invoking anything.
	ActionAdvisory ActionKind = "advisory"
)

// CheckDefinition is a static registry entry.
type CheckDefinition struct {
	ID       CheckID                `json:"id"`
	Name     string                 `json:"name"`
	Applies  func(f PathFacts) bool `json:"-"`
	Action   ActionKind             `json:"action"`
	Severity Severity               `json:"severity"`
	// Terminal checks replace the rest of the plan when they apply.
	Terminal bool `json:"terminal,omitempty"`
	// IgnoreExitStatus treats any completed run as passed.
	IgnoreExitStatus bool `json:"ignore_exit_status,omitempty"`
	// FilterToTarget keeps only diagnostic lines that mention the edited file.
	FilterToTarget bool   `json:"filter_to_target,omitempty"`
	Hint           string `json:"hint,omitempty"`
}

// CheckOutcome is what one check produced for one invocation.
type CheckOutcome struct {
	ID         CheckID     `json:"id"`
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Severity   Severity    `json:"severity"`
	Diagnostic string      `json:"diagnostic,omitempty"`
	Hint       string      `json:"hint,omitempty"`
	Command    string      `json:"command,omitempty"`
	ExitCode   int         `json:"exit_code"`
	// Fault marks a check whose tool could not be run at all.
	Fault bool `json:"fault,omitempty"`
}

// NewOutcome starts an outcome for def with its nominal severity.
func NewOutcome(def CheckDefinition) CheckOutcome {
	return CheckOutcome{
		ID:       def.ID,
		Name:     def.Name,
		Status:   StatusPassed,
		Severity: def.Severity,
		Hint:     def.Hint,
	}
}

// Blocks reports whether the outcome prevents proceeding.
func (o CheckOutcome) Blocks() bool {
	return o.Status == StatusFailed && o.Severity == SeverityBlocking
}
