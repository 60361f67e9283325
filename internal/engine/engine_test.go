package engine

import (
	"context"
	"testing"

	"freck/internal/config"
	"freck/internal/errors"
	"freck/internal/logging"
	"freck/internal/testutil"
)

func newEngine(t *testing.T, repo *testutil.GitRepo, mutate func(*config.Config)) *Engine {
	t.Helper()

	cfg := config.DefaultConfig(repo.Root)
	if mutate != nil {
		mutate(cfg)
	}

	e, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestNewRejectsNonRepository(t *testing.T) {
	cfg := config.DefaultConfig(t.TempDir())

	_, err := New(cfg, logging.NewNop())
	if err == nil {
		t.Fatal("expected error outside a git repository")
	}
	if !errors.HasCode(err, errors.ExternalToolFailure) {
		t.Errorf("expected EXTERNAL_TOOL_FAILURE, got %v", err)
	}
}

func TestTopFilesEndToEnd(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("core.go", "package core\n", "Add core")
	repo.CommitFile("core.go", "package core\n// v2\n", "Refine core")
	repo.CommitFile("helper.go", "package core\n", "Add helper")

	e := newEngine(t, repo, nil)

	ranked, err := e.TopFiles(context.Background())
	if err != nil {
		t.Fatalf("TopFiles: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 files, got %d", len(ranked))
	}
	if ranked[0].Name != "core.go" {
		t.Errorf("core.go should rank first, got %q", ranked[0].Name)
	}
}

func TestTopFilesCacheHit(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("core.go", "package core\n", "Add core")

	e := newEngine(t, repo, nil)

	first, err := e.TopFiles(context.Background())
	if err != nil {
		t.Fatalf("first TopFiles: %v", err)
	}

	// Same repository state: the second call is served from the cache and
	// must return the same view.
	second, err := e.TopFiles(context.Background())
	if err != nil {
		t.Fatalf("second TopFiles: %v", err)
	}

	if len(first) != len(second) || second[0].Identity != first[0].Identity {
		t.Errorf("cached view differs: %v vs %v", first, second)
	}
}

func TestTopFilesCacheInvalidatedByEdit(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("core.go", "package core\n", "Add core")

	e := newEngine(t, repo, nil)

	if _, err := e.TopFiles(context.Background()); err != nil {
		t.Fatalf("TopFiles: %v", err)
	}

	repo.CommitFile("fresh.go", "package core\n", "Add fresh")

	ranked, err := e.TopFiles(context.Background())
	if err != nil {
		t.Fatalf("TopFiles after commit: %v", err)
	}

	found := false
	for _, file := range ranked {
		if file.Name == "fresh.go" {
			found = true
		}
	}
	if !found {
		t.Error("new commit should invalidate the cached ranking")
	}
}

func TestTopFilesWithCacheDisabled(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("core.go", "package core\n", "Add core")

	e := newEngine(t, repo, func(c *config.Config) {
		c.Cache.Enabled = false
	})

	ranked, err := e.TopFiles(context.Background())
	if err != nil {
		t.Fatalf("TopFiles: %v", err)
	}
	if len(ranked) != 1 {
		t.Errorf("expected 1 file, got %d", len(ranked))
	}
}

func TestFileLookup(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("core.go", "package core\n", "Add core")

	e := newEngine(t, repo, nil)

	file, err := e.File(context.Background(), "core.go")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if file.Name != "core.go" || file.Score <= 0 {
		t.Errorf("unexpected view: %+v", file)
	}

	if _, err := e.File(context.Background(), "absent.go"); !errors.HasCode(err, errors.FileNotInSnapshot) {
		t.Errorf("expected FILE_NOT_IN_SNAPSHOT, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("core.go", "package core\n", "Add core")

	e := newEngine(t, repo, nil)

	state, err := e.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if state.HeadCommit != repo.Head() {
		t.Errorf("HeadCommit = %q", state.HeadCommit)
	}
	if len(state.Fingerprint) != 64 {
		t.Errorf("Fingerprint = %q", state.Fingerprint)
	}
}
