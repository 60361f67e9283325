package history

import (
	"strings"
	"time"

	"freck/internal/errors"
)

const (
	// HeaderMarker prefixes commit header lines in the log stream so they
	// can never be confused with file paths
	HeaderMarker = "###"

	// FieldDelimiter joins the four header fields
	FieldDelimiter = ":::"

	// headerTimeLayout matches git's %ai format, e.g. "2024-01-15 10:00:00 +0000"
	headerTimeLayout = "2006-01-02 15:04:05 -0700"
)

// CommitRecord is an immutable view of one commit, derived once from a log
// header line. AgeDays is relative to "today" at parse time, so a given
// commit's age advances across runs; re-parse to get current ages.
type CommitRecord struct {
	ShortHash string
	AgeDays   int
	Author    string
	Subject   string
}

// ParseCommitHeader parses one header line (marker already stripped) into a
// CommitRecord. The line holds four :::-delimited fields: short hash,
// timestamp, "Name <email>", and the subject. The split is bounded at four
// pieces so the free-text subject may itself contain the delimiter.
func ParseCommitHeader(line string, today time.Time) (CommitRecord, error) {
	parts := strings.SplitN(line, FieldDelimiter, 4)
	if len(parts) != 4 {
		return CommitRecord{}, errors.New(errors.MalformedCommitHeader, "commit header does not have 4 fields").
			WithDetails(map[string]interface{}{"line": line})
	}

	committed, err := time.Parse(headerTimeLayout, parts[1])
	if err != nil {
		return CommitRecord{}, errors.Wrap(errors.MalformedCommitHeader, "commit header has unparseable timestamp", err).
			WithDetails(map[string]interface{}{"timestamp": parts[1]})
	}

	return CommitRecord{
		ShortHash: parts[0],
		AgeDays:   daysBetween(committed, today),
		Author:    parts[2],
		Subject:   parts[3],
	}, nil
}

// daysBetween counts whole calendar days from the commit's local date to
// today's date. Future-dated commits clamp to age 0.
func daysBetween(committed, today time.Time) int {
	cy, cm, cd := committed.Date()
	ty, tm, td := today.Date()

	from := time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
