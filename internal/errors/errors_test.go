package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *FreckError
		expected string
	}{
		{
			name:     "without cause",
			err:      New(FileNotInSnapshot, "path not present at HEAD"),
			expected: "[FILE_NOT_IN_SNAPSHOT] path not present at HEAD",
		},
		{
			name:     "with cause",
			err:      Wrap(ExternalToolFailure, "git log failed", stderrors.New("exit status 128")),
			expected: "[EXTERNAL_TOOL_FAILURE] git log failed: exit status 128",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("Error() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := Wrap(ExternalToolFailure, "git diff failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if New(InternalError, "no cause").Unwrap() != nil {
		t.Error("Unwrap on a cause-less error should return nil")
	}
}

func TestHasCode(t *testing.T) {
	err := New(MalformedCommitHeader, "bad header line")

	if !HasCode(err, MalformedCommitHeader) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, MalformedSnapshotListing) {
		t.Error("HasCode should not match a different code")
	}

	// Code detection must survive further wrapping.
	wrapped := fmt.Errorf("analyze: %w", err)
	if !HasCode(wrapped, MalformedCommitHeader) {
		t.Error("HasCode should see through fmt.Errorf wrapping")
	}

	if HasCode(stderrors.New("plain"), InternalError) {
		t.Error("HasCode should be false for non-FreckError errors")
	}
}

func TestCodeOf(t *testing.T) {
	if code := CodeOf(New(ConfigInvalid, "bad decay")); code != ConfigInvalid {
		t.Errorf("CodeOf = %q, expected %q", code, ConfigInvalid)
	}
	if code := CodeOf(stderrors.New("plain")); code != InternalError {
		t.Errorf("CodeOf for plain error = %q, expected %q", code, InternalError)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(MalformedSnapshotListing, "bad listing line").WithDetails(map[string]interface{}{
		"line": "100644 blob",
	})

	details, ok := err.Details.(map[string]interface{})
	if !ok {
		t.Fatal("Details should hold the attached map")
	}
	if !strings.Contains(details["line"].(string), "blob") {
		t.Error("Details content lost")
	}
}
