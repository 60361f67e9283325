package history

import (
	"math"
	"sort"
)

// Snapshot is an immutable view of the repository's change history: every
// accepted file paired with its commit records (newest-first) and its
// frecency score. A rebuild produces a fresh Snapshot and never mutates a
// previous one, so readers can hold a Snapshot across rebuilds safely.
type Snapshot struct {
	changes map[string][]CommitRecord
	scores  map[string]float64
}

// newSnapshot seals a change index, folding each file's commits into its
// frecency score. score(f) = sum of exp(-decay * ageDays) over f's records.
func newSnapshot(changes map[string][]CommitRecord, decay float64) *Snapshot {
	scores := make(map[string]float64, len(changes))
	for file, commits := range changes {
		score := 0.0
		for _, commit := range commits {
			score += math.Exp(-decay * float64(commit.AgeDays))
		}
		scores[file] = score
	}

	return &Snapshot{
		changes: changes,
		scores:  scores,
	}
}

// Len returns the number of files with recorded history
func (s *Snapshot) Len() int {
	return len(s.changes)
}

// Files returns all recorded filenames in sorted order
func (s *Snapshot) Files() []string {
	files := make([]string, 0, len(s.changes))
	for file := range s.changes {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Score returns the frecency score for a file. A file with no recorded
// commits has no score at all, not a zero score.
func (s *Snapshot) Score(name string) (float64, bool) {
	score, ok := s.scores[name]
	return score, ok
}

// Records returns a file's commit records, newest-first. Callers must not
// mutate the returned slice.
func (s *Snapshot) Records(name string) []CommitRecord {
	return s.changes[name]
}

// Subjects returns a file's commit subjects, newest-first
func (s *Snapshot) Subjects(name string) []string {
	commits := s.changes[name]
	if commits == nil {
		return nil
	}

	subjects := make([]string, len(commits))
	for i, commit := range commits {
		subjects[i] = commit.Subject
	}
	return subjects
}
