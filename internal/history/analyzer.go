package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"freck/internal/config"
	"freck/internal/filetypes"
	"freck/internal/gitexec"
	"freck/internal/logging"
)

// logFormat emits one marker-prefixed header line per commit followed by
// the paths it touched (--name-only), one per line.
var logFormat = fmt.Sprintf("--pretty=format:%s%%h%s%%ai%s%%an <%%ae>%s%%s",
	HeaderMarker, FieldDelimiter, FieldDelimiter, FieldDelimiter)

// Analyzer builds history snapshots from a repository's commit log
type Analyzer struct {
	runner  *gitexec.Runner
	ranking config.RankingConfig
	logger  *logging.Logger
}

// NewAnalyzer creates an Analyzer over the given repository runner
func NewAnalyzer(runner *gitexec.Runner, ranking config.RankingConfig, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		runner:  runner,
		ranking: ranking,
		logger:  logger,
	}
}

// lineSource is the minimal line-at-a-time view the fold consumes; a
// gitexec.Stream satisfies it, and tests feed synthetic streams.
type lineSource interface {
	Scan() bool
	Text() string
}

// Analyze runs a single pass over the commit log and returns a fresh
// Snapshot. The previous snapshot (if the caller holds one) is simply
// replaced; nothing is merged incrementally. The log process output is
// consumed line-at-a-time, so memory stays bounded regardless of history
// size.
func (a *Analyzer) Analyze(ctx context.Context) (*Snapshot, error) {
	// The tracked set is snapshotted once, before the stream is consumed.
	tracked, err := a.trackedFiles(ctx)
	if err != nil {
		return nil, err
	}

	args := []string{"log", "--name-only", "--no-merges", logFormat}
	if a.ranking.ReadMaxCommits > 0 {
		// Cap the query itself rather than truncating its output.
		args = append(args, fmt.Sprintf("--max-count=%d", a.ranking.ReadMaxCommits))
	}

	stream, err := a.runner.Start(args...)
	if err != nil {
		return nil, err
	}

	snapshot, buildErr := a.build(stream, tracked, time.Now())

	// Drain before reaping even when the parse aborted early; there is no
	// mid-stream cancellation.
	for stream.Scan() {
	}
	if err := stream.Wait(); err != nil {
		return nil, err
	}
	if buildErr != nil {
		return nil, buildErr
	}

	a.logger.Info("Analyzed commit history", map[string]interface{}{
		"files":   snapshot.Len(),
		"tracked": len(tracked),
	})

	return snapshot, nil
}

// trackedFiles enumerates the current working-tree file set: everything
// tracked plus untracked files not excluded by gitignore rules.
func (a *Analyzer) trackedFiles(ctx context.Context) (map[string]struct{}, error) {
	output, err := a.runner.Output(ctx, "ls-files", "--cached", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}

	files := make(map[string]struct{})
	for _, name := range strings.Fields(output) {
		files[name] = struct{}{}
	}
	return files, nil
}

// build folds the log stream into a change index and seals it. Header
// lines move the current-commit cursor; every other non-empty line is a
// candidate file path attributed to that cursor.
func (a *Analyzer) build(lines lineSource, tracked map[string]struct{}, today time.Time) (*Snapshot, error) {
	changes := make(map[string][]CommitRecord)

	var current CommitRecord
	haveCommit := false

	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())

		if strings.HasPrefix(line, HeaderMarker) {
			record, err := ParseCommitHeader(strings.TrimPrefix(line, HeaderMarker), today)
			if err != nil {
				// A corrupt header invalidates all subsequent attribution.
				return nil, err
			}
			current = record
			haveCommit = true
			continue
		}

		if line == "" {
			continue
		}

		// A file line before any header means the stream is not what we
		// asked for; skip rather than misattribute.
		if !haveCommit {
			continue
		}

		if !a.acceptFile(line, tracked) {
			continue
		}

		changes[line] = append(changes[line], current)
	}

	return newSnapshot(changes, a.ranking.DecayPerDay), nil
}

// acceptFile applies the three ranking filters, cheapest first
func (a *Analyzer) acceptFile(name string, tracked map[string]struct{}) bool {
	if _, ok := tracked[name]; !ok {
		return false
	}
	if !filetypes.IsSupported(name) {
		return false
	}
	return !a.isIgnored(name)
}

// isIgnored reports whether any configured glob matches the path; the
// first match wins. Slash-less patterns also match against the basename,
// so "*.lock" excludes lock files anywhere in the tree.
func (a *Analyzer) isIgnored(name string) bool {
	for _, pattern := range a.ranking.IgnorePatterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, filepath.Base(name)); ok {
				return true
			}
		}
	}
	return false
}
