package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/domain"
	"github.com/abdidvp/editgate/internal/domain/check"
	"github.com/abdidvp/editgate/internal/domain/classify"
)

// ValidateService runs the post-edit checks for one invocation at a time. It
// holds no per-invocation state, so concurrent calls are independent.
type ValidateService struct {
	cfg        domain.Config
	classifier *classify.Classifier
	registry   *check.Registry
	runner     *CheckRunner
	git        domain.GitInspector
	logger     *zap.SugaredLogger
	newID      func() string
}

// Option configures a ValidateService.
type Option func(*ValidateService)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *ValidateService) { s.logger = l }
}

// WithGitInspector enables git status details in the sensitive-file advisory.
func WithGitInspector(g domain.GitInspector) Option {
	return func(s *ValidateService) { s.git = g }
}

// WithRegistry replaces the default check registry.
func WithRegistry(r *check.Registry) Option {
	return func(s *ValidateService) { s.registry = r }
}

// WithIDGenerator replaces the invocation id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *ValidateService) { s.newID = fn }
}

// NewValidateService wires the classifier, registry and runner for cfg.
func NewValidateService(cfg domain.Config, invoker domain.ProcessInvoker, opts ...Option) (*ValidateService, error) {
	runner, err := NewCheckRunner(invoker, cfg)
	if err != nil {
		return nil, err
	}

	s := &ValidateService{
		cfg:        cfg,
		classifier: classify.New(cfg),
		registry:   check.DefaultRegistry(),
		runner:     runner,
		logger:     zap.NewNop().Sugar(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// InvokerFactory builds the process invoker for a loaded configuration.
type InvokerFactory func(cfg domain.Config) domain.ProcessInvoker

// LoadValidateService loads the configuration of projectPath through loader and
// builds a service whose invoker is created for that configuration.
func LoadValidateService(loader domain.ConfigLoader, projectPath string, newInvoker InvokerFactory, opts ...Option) (*ValidateService, error) {
	cfg, err := loader.Load(projectPath)
	if err != nil {
		return nil, err
	}
	return NewValidateService(cfg, newInvoker(cfg), opts...)
}

// Config returns the configuration the service was built with.
func (s *ValidateService) Config() domain.Config { return s.cfg }

// WorkDir returns the absolute directory checks run in. Relative file paths
// are resolved against it.
func (s *ValidateService) WorkDir() string { return s.runner.WorkDir() }

// Registry returns the check registry in use.
func (s *ValidateService) Registry() *check.Registry { return s.registry }

// Plan classifies filePath and returns the checks that would run for it.
func (s *ValidateService) Plan(filePath string) (domain.PathFacts, []domain.CheckDefinition) {
	facts := s.classifier.Classify(filePath)
	return facts, s.registry.Applicable(facts)
}

// Validate classifies the edited file, runs the applicable checks in registry
// order and aggregates their outcomes. It never fails: every problem is
// represented in the returned Verdict.
func (s *ValidateService) Validate(ctx context.Context, inv domain.Invocation) domain.Verdict {
	if !inv.NeedsValidation() {
		s.logger.Debugw("skipping invocation", "tool", inv.Tool, "file", inv.FilePath)
		v := domain.NoOpVerdict()
		v.File = inv.FilePath
		return v
	}

	id := s.newID()
	log := s.logger.With("invocation", id, "file", inv.FilePath)

	facts, plan := s.Plan(inv.FilePath)
	log.Debugw("classified",
		"language", facts.Language,
		"zone", facts.Zone,
		"test", facts.IsTestFile,
		"sensitive", facts.IsSensitive,
		"checks", len(plan),
	)

	outcomes := make([]domain.CheckOutcome, 0, len(plan))
	for _, def := range plan {
		out := s.runCheck(ctx, def, facts, log)
		outcomes = append(outcomes, out)

		if def.Terminal {
			break
		}
		if s.cfg.StopOnBlocking && out.Blocks() {
			log.Infow("stopping after blocking failure", "check", def.Name)
			break
		}
	}

	v := check.Aggregate(outcomes)
	v.InvocationID = id
	v.File = inv.FilePath
	v.Message = check.ComposeMessage(v)

	recordVerdict(ctx, v)
	log.Infow("validation finished",
		"proceed", v.Proceed,
		"performed", v.PerformedChecks,
		"blocking", len(v.BlockingIssues),
		"advisory", len(v.AdvisoryIssues),
	)
	return v
}

func (s *ValidateService) runCheck(ctx context.Context, def domain.CheckDefinition, facts domain.PathFacts, log *zap.SugaredLogger) domain.CheckOutcome {
	if def.Action == domain.ActionAdvisory {
		return s.adviseSensitive(def, facts)
	}

	out, err := s.runner.Run(ctx, def, facts)
	if err != nil {
		// An unrunnable gate must not pass silently.
		out.Status = domain.StatusFailed
		out.Severity = domain.SeverityBlocking
		out.Fault = true
		out.Diagnostic = err.Error()
		log.Warnw("check could not run", "check", def.Name, "command", out.Command, "error", err)
		return out
	}

	log.Debugw("check finished", "check", def.Name, "status", out.Status, "exit_code", out.ExitCode)
	return out
}

// adviseSensitive produces the sensitive-file advisory. It invokes no external
// process; git details are best-effort.
func (s *ValidateService) adviseSensitive(def domain.CheckDefinition, facts domain.PathFacts) domain.CheckOutcome {
	out := domain.NewOutcome(def)
	out.Status = domain.StatusFailed

	lines := []string{fmt.Sprintf("Path matches sensitive keyword %q.", facts.SensitiveMatch)}
	if s.git != nil {
		lines = append(lines, describeGitStatus(s.git.Inspect(s.runner.WorkDir(), facts.Path))...)
	}
	out.Diagnostic = strings.Join(lines, "\n")
	return out
}

func describeGitStatus(st domain.GitStatus, err error) []string {
	switch {
	case err != nil && errors.Is(err, domain.ErrWorkDirInvalid):
		return []string{"Git status: unknown (working directory invalid)"}
	case err != nil:
		return []string{fmt.Sprintf("Git status: unknown (%v)", err)}
	case !st.InRepo:
		return []string{"Git status: not inside a git repository"}
	}

	lines := []string{
		"Ignored by .gitignore: " + yesNo(st.Ignored),
		"Tracked by git: " + yesNo(st.Tracked),
	}
	if st.Tracked {
		lines = append(lines, "The file is already tracked; .gitignore alone will not keep it out of commits.")
	}
	return lines
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
