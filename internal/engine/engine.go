// Package engine wires the freck components into one ranking pipeline.
package engine

import (
	"context"

	"freck/internal/cache"
	"freck/internal/config"
	"freck/internal/errors"
	"freck/internal/gitexec"
	"freck/internal/history"
	"freck/internal/identity"
	"freck/internal/logging"
	"freck/internal/rank"
	"freck/internal/repostate"
)

// Engine exposes the ranking operations to consumers. It is synchronous
// and single-threaded by design: a ranking pass runs one enumerator call,
// one streamed log pass and one batch identity resolution, in that order.
type Engine struct {
	cfg      *config.Config
	logger   *logging.Logger
	runner   *gitexec.Runner
	analyzer *history.Analyzer
	ranker   *rank.Ranker
	store    *cache.Store // nil when caching is disabled
}

// New builds an Engine for the configured repository
func New(cfg *config.Config, logger *logging.Logger) (*Engine, error) {
	if !repostate.IsGitRepository(cfg.RepoRoot) {
		return nil, errors.New(errors.ExternalToolFailure, "not a git repository").
			WithDetails(map[string]interface{}{"repoRoot": cfg.RepoRoot})
	}

	runner := gitexec.NewRunner(cfg.RepoRoot, logger)
	resolver := identity.NewResolver(runner, logger)

	engine := &Engine{
		cfg:      cfg,
		logger:   logger,
		runner:   runner,
		analyzer: history.NewAnalyzer(runner, cfg.Ranking, logger),
		ranker:   rank.NewRanker(cfg.RepoRoot, resolver, logger),
	}

	if cfg.Cache.Enabled {
		store, err := cache.OpenStore(cfg.CacheDir(), logger)
		if err != nil {
			// The cache is an optimization; ranking works without it.
			logger.Warn("Ranking cache unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			engine.store = store
		}
	}

	return engine, nil
}

// Close releases the cache store if one is open
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// TopFiles returns the ranked view for the repository's current state,
// reusing a cached view when the status fingerprint matches one computed
// earlier today.
func (e *Engine) TopFiles(ctx context.Context) ([]rank.RankedFile, error) {
	state, err := repostate.Compute(ctx, e.runner)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if files, hit, err := e.store.Get(state.Fingerprint); err == nil && hit {
			e.logger.Debug("Ranking served from cache", map[string]interface{}{
				"fingerprint": state.Fingerprint,
			})
			return files, nil
		}
	}

	snapshot, err := e.analyzer.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := e.ranker.TopFiles(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.store.Put(state.Fingerprint, ranked); err != nil {
			e.logger.Warn("Failed to cache ranking", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return ranked, nil
}

// File returns the ranked view of one path, with FILE_NOT_IN_SNAPSHOT when
// the path has no blob at HEAD
func (e *Engine) File(ctx context.Context, name string) (*rank.RankedFile, error) {
	snapshot, err := e.analyzer.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return e.ranker.File(ctx, snapshot, name)
}

// Status returns the repository's current state and fingerprint
func (e *Engine) Status(ctx context.Context) (*repostate.State, error) {
	return repostate.Compute(ctx, e.runner)
}
