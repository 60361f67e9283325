package history

import (
	"testing"
	"time"

	"freck/internal/errors"
)

var parseToday = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func TestParseCommitHeader(t *testing.T) {
	line := "abc123:::2024-01-15 10:00:00 +0000:::Jane Doe <j@example.com>:::Fix bug: edge case"

	record, err := ParseCommitHeader(line, parseToday)
	if err != nil {
		t.Fatalf("ParseCommitHeader: %v", err)
	}

	if record.ShortHash != "abc123" {
		t.Errorf("ShortHash = %q", record.ShortHash)
	}
	if record.Author != "Jane Doe <j@example.com>" {
		t.Errorf("Author = %q", record.Author)
	}
	if record.Subject != "Fix bug: edge case" {
		t.Errorf("Subject = %q", record.Subject)
	}
	if record.AgeDays != 5 {
		t.Errorf("AgeDays = %d, expected 5", record.AgeDays)
	}
}

func TestParseCommitHeaderSubjectContainsDelimiter(t *testing.T) {
	// The bounded split keeps everything after the third delimiter as the
	// subject, even when the subject itself contains ":::".
	line := "def456:::2024-01-18 08:30:00 +0100:::Bob <b@example.com>:::weird ::: subject"

	record, err := ParseCommitHeader(line, parseToday)
	if err != nil {
		t.Fatalf("ParseCommitHeader: %v", err)
	}
	if record.Subject != "weird ::: subject" {
		t.Errorf("Subject = %q", record.Subject)
	}
}

func TestParseCommitHeaderMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "abc123:::2024-01-15 10:00:00 +0000:::Jane <j@example.com>"},
		{"empty line", ""},
		{"garbage", "not a header at all"},
		{"bad timestamp", "abc123:::January 15th:::Jane <j@example.com>:::Subject"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCommitHeader(tc.line, parseToday)
			if err == nil {
				t.Fatal("expected error for malformed header")
			}
			if !errors.HasCode(err, errors.MalformedCommitHeader) {
				t.Errorf("expected MALFORMED_COMMIT_HEADER, got %v", err)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name      string
		committed time.Time
		expected  int
	}{
		{
			name:      "same day",
			committed: time.Date(2024, 1, 20, 0, 5, 0, 0, time.UTC),
			expected:  0,
		},
		{
			name:      "five days back",
			committed: time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC),
			expected:  5,
		},
		{
			name: "calendar date in commit's own zone",
			// 2024-01-19 23:00 +0900 is still the 19th locally.
			committed: time.Date(2024, 1, 19, 23, 0, 0, 0, time.FixedZone("JST", 9*3600)),
			expected:  1,
		},
		{
			name:      "future-dated commit clamps to zero",
			committed: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
			expected:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysBetween(tc.committed, parseToday); got != tc.expected {
				t.Errorf("daysBetween = %d, expected %d", got, tc.expected)
			}
		})
	}
}
