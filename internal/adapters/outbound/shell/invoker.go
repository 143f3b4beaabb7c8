// Package shell runs check commands through the system shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/domain"
)

// DefaultMaxOutput caps each captured stream.
const DefaultMaxOutput = 1 << 20

// Exit statuses the shell uses for "found but not executable" and "not found".
const (
	exitNotExecutable = 126
	exitNotFound      = 127
)

// Invoker implements domain.ProcessInvoker with `sh -c`.
type Invoker struct {
	shell     string
	timeout   time.Duration
	maxOutput int
	logger    *zap.SugaredLogger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTimeout bounds each command. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(i *Invoker) { i.timeout = d }
}

// WithShell overrides the shell binary.
func WithShell(path string) Option {
	return func(i *Invoker) { i.shell = path }
}

// WithMaxOutput caps the bytes kept from stdout and stderr each.
func WithMaxOutput(n int) Option {
	return func(i *Invoker) { i.maxOutput = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(i *Invoker) { i.logger = l }
}

// New creates an Invoker.
func New(opts ...Option) *Invoker {
	i := &Invoker{
		shell:     "sh",
		timeout:   domain.DefaultToolTimeout,
		maxOutput: DefaultMaxOutput,
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Invoke runs command in workDir and waits for it. A non-zero exit status is
// returned in the result, not as an error.
func (i *Invoker) Invoke(ctx context.Context, command, workDir string) (domain.ProcessResult, error) {
	if st, err := os.Stat(workDir); err != nil || !st.IsDir() {
		return domain.ProcessResult{}, fmt.Errorf("%w: %s", domain.ErrWorkDirInvalid, workDir)
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, i.shell, "-c", command)
	cmd.Dir = workDir
	// Grandchildren may hold the pipes open after the shell is killed.
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	stdoutLimited := &limitedWriter{w: &stdout, limit: i.maxOutput}
	stderrLimited := &limitedWriter{w: &stderr, limit: i.maxOutput}
	cmd.Stdout = stdoutLimited
	cmd.Stderr = stderrLimited

	i.logger.Debugw("executing command", "command", command, "dir", workDir, "timeout", i.timeout)

	start := time.Now()
	err := cmd.Run()

	res := domain.ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		i.logger.Warnw("command timed out", "command", command, "timeout", i.timeout)
		return res, fmt.Errorf("%w after %s", domain.ErrToolTimeout, i.timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			res.ExitCode = -1
			return res, fmt.Errorf("%w: %v", domain.ErrToolUnavailable, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	i.logger.Debugw("command finished",
		"command", command,
		"exit_code", res.ExitCode,
		"duration", time.Since(start),
		"truncated", stdoutLimited.truncated || stderrLimited.truncated,
	)

	switch res.ExitCode {
	case exitNotExecutable, exitNotFound:
		return res, fmt.Errorf("%w: exit status %d: %s", domain.ErrToolUnavailable, res.ExitCode, firstLine(res.Stderr))
	}
	return res, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// limitedWriter keeps the first limit bytes and discards the rest.
type limitedWriter struct {
	w         io.Writer
	limit     int
	written   int
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.written >= lw.limit {
		lw.truncated = true
		return n, nil
	}
	remaining := lw.limit - lw.written
	if len(p) > remaining {
		p = p[:remaining]
		lw.truncated = true
	}
	written, err := lw.w.Write(p)
	lw.written += written
	if err != nil {
		return written, err
	}
	return n, nil
}
