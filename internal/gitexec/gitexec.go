package gitexec

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"freck/internal/errors"
	"freck/internal/logging"
)

// DefaultTimeout bounds one-shot git invocations (5000ms)
const DefaultTimeout = 5000 * time.Millisecond

// Runner executes git commands against a single repository
type Runner struct {
	repoRoot string
	timeout  time.Duration
	logger   *logging.Logger
}

// NewRunner creates a Runner rooted at repoRoot
func NewRunner(repoRoot string, logger *logging.Logger) *Runner {
	return &Runner{
		repoRoot: repoRoot,
		timeout:  DefaultTimeout,
		logger:   logger,
	}
}

// WithTimeout overrides the one-shot command timeout
func (r *Runner) WithTimeout(timeout time.Duration) *Runner {
	r.timeout = timeout
	return r
}

// RepoRoot returns the repository the runner is bound to
func (r *Runner) RepoRoot() string {
	return r.repoRoot
}

// Output runs a git command to completion and returns trimmed stdout.
// Launch failures, timeouts and non-zero exits surface as
// EXTERNAL_TOOL_FAILURE; the underlying tools are deterministic, so the
// caller must not retry.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.repoRoot

	r.logger.Debug("Executing git command", map[string]interface{}{
		"args":    args,
		"timeout": r.timeout.String(),
	})

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Wrap(errors.ExternalToolFailure, "git command timed out", err).
				WithDetails(map[string]interface{}{"args": args})
		}

		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", errors.Wrap(errors.ExternalToolFailure, "git command failed", err).
				WithDetails(map[string]interface{}{
					"args":   args,
					"stderr": string(exitErr.Stderr),
				})
		}

		return "", errors.Wrap(errors.ExternalToolFailure, "failed to launch git", err).
			WithDetails(map[string]interface{}{"args": args})
	}

	return strings.TrimSpace(string(output)), nil
}

// Lines runs a git command and returns stdout as trimmed non-empty lines
func (r *Runner) Lines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Output(ctx, args...)
	if err != nil {
		return nil, err
	}

	if output == "" {
		return []string{}, nil
	}

	lines := strings.Split(output, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result, nil
}
