package gitexec

import (
	"context"
	"testing"

	"freck/internal/errors"
	"freck/internal/logging"
	"freck/internal/testutil"
)

func TestOutput(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("main.go", "package main\n", "Initial commit")

	runner := NewRunner(repo.Root, logging.NewNop())

	head, err := runner.Output(context.Background(), "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("expected 40-char commit hash, got %q", head)
	}
}

func TestOutputFailureCarriesStderr(t *testing.T) {
	repo := testutil.NewGitRepo(t)

	runner := NewRunner(repo.Root, logging.NewNop())

	// No commits yet, so HEAD does not resolve.
	_, err := runner.Output(context.Background(), "rev-parse", "--verify", "HEAD")
	if err == nil {
		t.Fatal("expected failure resolving HEAD in empty repo")
	}
	if !errors.HasCode(err, errors.ExternalToolFailure) {
		t.Errorf("expected EXTERNAL_TOOL_FAILURE, got %v", err)
	}
}

func TestLines(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.WriteFile("a.go", "package a\n")
	repo.WriteFile("b.go", "package b\n")
	repo.Commit("Add files")

	runner := NewRunner(repo.Root, logging.NewNop())

	lines, err := runner.Lines(context.Background(), "ls-files")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %v", lines)
	}
}

func TestLinesEmptyOutput(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.Commit("Empty commit")

	runner := NewRunner(repo.Root, logging.NewNop())

	lines, err := runner.Lines(context.Background(), "ls-files")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}

func TestStream(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitFile("one.go", "package one\n", "First")
	repo.CommitFile("two.go", "package two\n", "Second")

	runner := NewRunner(repo.Root, logging.NewNop())

	stream, err := runner.Start("log", "--pretty=format:%s")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var subjects []string
	for stream.Scan() {
		subjects = append(subjects, stream.Text())
	}
	if err := stream.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if len(subjects) != 2 || subjects[0] != "Second" || subjects[1] != "First" {
		t.Errorf("unexpected subjects: %v", subjects)
	}
}

func TestStreamWaitReportsFailure(t *testing.T) {
	repo := testutil.NewGitRepo(t)

	runner := NewRunner(repo.Root, logging.NewNop())

	stream, err := runner.Start("log", "--pretty=format:%s")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for stream.Scan() {
	}

	// git log in a repo without commits exits non-zero.
	err = stream.Wait()
	if err == nil {
		t.Fatal("expected Wait to fail for empty repo log")
	}
	if !errors.HasCode(err, errors.ExternalToolFailure) {
		t.Errorf("expected EXTERNAL_TOOL_FAILURE, got %v", err)
	}
}
