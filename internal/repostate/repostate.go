package repostate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os/exec"
	"time"

	"freck/internal/gitexec"
)

// State captures the repository at one moment: the committed HEAD and a
// fingerprint that also covers uncommitted working-tree edits. The
// fingerprint is an opaque cache key; two states share it iff HEAD and the
// working diff are byte-identical.
type State struct {
	HeadCommit  string `json:"headCommit"`
	Fingerprint string `json:"fingerprint"`
	Dirty       bool   `json:"dirty"`
	ComputedAt  string `json:"computedAt"`
}

// Compute derives the current repository state using git commands
func Compute(ctx context.Context, runner *gitexec.Runner) (*State, error) {
	head, err := runner.Output(ctx, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}

	// Raw diff text, not a hash of it: the fingerprint digests the
	// concatenation of HEAD and the full working-tree diff.
	workingDiff, err := runner.Output(ctx, "diff")
	if err != nil {
		return nil, err
	}

	return &State{
		HeadCommit:  head,
		Fingerprint: hashString(head + workingDiff),
		Dirty:       workingDiff != "",
		ComputedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// hashString computes the SHA256 hex digest of a string
func hashString(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}

// IsGitRepository checks if the given path is a git repository
func IsGitRepository(repoRoot string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = repoRoot
	return cmd.Run() == nil
}

// FindRepoRoot walks up from startPath to the enclosing repository root
func FindRepoRoot(ctx context.Context, runner *gitexec.Runner) (string, error) {
	return runner.Output(ctx, "rev-parse", "--show-toplevel")
}
