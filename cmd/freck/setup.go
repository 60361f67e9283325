package main

import (
	"context"
	"fmt"
	"os"

	"freck/internal/config"
	"freck/internal/engine"
	"freck/internal/gitexec"
	"freck/internal/logging"
	"freck/internal/repostate"
)

// resolveRepoRoot picks the repository root: the --repo flag when given,
// otherwise the root enclosing the working directory.
func resolveRepoRoot() (string, error) {
	if repoFlag != "" {
		return repoFlag, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	runner := gitexec.NewRunner(cwd, logging.NewNop())
	return repostate.FindRepoRoot(context.Background(), runner)
}

// mustSetup loads config, builds the logger and constructs the engine,
// exiting on any failure
func mustSetup() (*engine.Engine, *logging.Logger) {
	repoRoot, err := resolveRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: not inside a git repository: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})

	e, err := engine.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return e, logger
}
