// Package testutil builds throwaway git repositories for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo is a temporary git repository driven through the real git binary
type GitRepo struct {
	Root string
	t    *testing.T
}

// NewGitRepo initializes an empty repository under t.TempDir, skipping the
// test when git is not installed
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}

	root := t.TempDir()
	repo := &GitRepo{Root: root, t: t}

	repo.Git("init", "-q")
	repo.Git("config", "user.name", "Test Author")
	repo.Git("config", "user.email", "test@example.com")
	repo.Git("config", "commit.gpgsign", "false")

	return repo
}

// Git runs a git command in the repository, failing the test on error
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Root
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

// WriteFile creates or overwrites a file relative to the repo root
func (r *GitRepo) WriteFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.t.Fatal(err)
	}
}

// Commit stages everything and commits with the given subject
func (r *GitRepo) Commit(subject string) {
	r.t.Helper()

	r.Git("add", "-A")
	r.Git("commit", "-q", "--allow-empty", "-m", subject)
}

// CommitFile writes one file and commits it in a single step
func (r *GitRepo) CommitFile(name, content, subject string) {
	r.t.Helper()

	r.WriteFile(name, content)
	r.Commit(subject)
}

// Head returns the current HEAD commit hash
func (r *GitRepo) Head() string {
	r.t.Helper()
	return r.Git("rev-parse", "HEAD")
}
