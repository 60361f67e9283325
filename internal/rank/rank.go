// Package rank assembles the externally-consumed ranked file view.
package rank

import (
	"context"
	"path/filepath"
	"sort"

	"freck/internal/history"
	"freck/internal/identity"
	"freck/internal/logging"
)

// RankedFile pairs a file with everything the presentation layer needs:
// its relative name, absolute path, current blob identity, frecency score
// and the commit subjects recorded for it (newest-first). Ownership of the
// value belongs to the caller.
type RankedFile struct {
	Name     string   `json:"name"`
	AbsPath  string   `json:"absPath"`
	Identity string   `json:"identity"`
	Score    float64  `json:"score"`
	Subjects []string `json:"subjects"`
}

// Ranker turns history snapshots into ranked views
type Ranker struct {
	repoRoot string
	resolver *identity.Resolver
	logger   *logging.Logger
}

// NewRanker creates a Ranker for the given repository root
func NewRanker(repoRoot string, resolver *identity.Resolver, logger *logging.Logger) *Ranker {
	return &Ranker{
		repoRoot: repoRoot,
		resolver: resolver,
		logger:   logger,
	}
}

// TopFiles returns the snapshot's files ordered by descending frecency
// score. Identities for the whole sorted set are resolved with a single
// batch call; files that no longer exist at HEAD are dropped rather than
// failing the pass. Reading the snapshot never mutates it.
func (r *Ranker) TopFiles(ctx context.Context, snapshot *history.Snapshot) ([]RankedFile, error) {
	// Files() is sorted, so equal scores keep a deterministic
	// alphabetical order under the stable sort.
	names := snapshot.Files()
	sort.SliceStable(names, func(i, j int) bool {
		si, _ := snapshot.Score(names[i])
		sj, _ := snapshot.Score(names[j])
		return si > sj
	})

	identities, err := r.resolver.ResolveAll(ctx, names)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedFile, 0, len(identities))
	for _, name := range names {
		id, ok := identities[name]
		if !ok {
			continue
		}
		score, _ := snapshot.Score(name)
		ranked = append(ranked, RankedFile{
			Name:     name,
			AbsPath:  filepath.Join(r.repoRoot, name),
			Identity: id,
			Score:    score,
			Subjects: snapshot.Subjects(name),
		})
	}

	r.logger.Debug("Assembled ranked view", map[string]interface{}{
		"scored": len(names),
		"ranked": len(ranked),
	})

	return ranked, nil
}

// File returns the ranked view of a single file through the fallible
// single-path resolver: a path absent at HEAD surfaces
// FILE_NOT_IN_SNAPSHOT instead of being silently dropped.
func (r *Ranker) File(ctx context.Context, snapshot *history.Snapshot, name string) (*RankedFile, error) {
	id, err := r.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	score, _ := snapshot.Score(name)
	return &RankedFile{
		Name:     name,
		AbsPath:  filepath.Join(r.repoRoot, name),
		Identity: id,
		Score:    score,
		Subjects: snapshot.Subjects(name),
	}, nil
}
