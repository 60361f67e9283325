package gitexec

import (
	"bufio"
	"io"
	"os/exec"

	"freck/internal/errors"
)

// Stream is a single-use, line-at-a-time view of a running git command's
// stdout. The log a Stream carries can be arbitrarily large, so callers
// consume it incrementally and never materialize it in full. There is no
// mid-stream cancellation: drain to EOF, then Wait.
type Stream struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	scanner *bufio.Scanner
}

// Start launches a long-lived git command whose output will be streamed
func (r *Runner) Start(args ...string) (*Stream, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.repoRoot

	r.logger.Debug("Streaming git command", map[string]interface{}{
		"args": args,
	})

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ExternalToolFailure, "failed to open stdout pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.ExternalToolFailure, "failed to launch git", err).
			WithDetails(map[string]interface{}{"args": args})
	}

	scanner := bufio.NewScanner(stdout)
	// File paths and subjects stay short, but a pathological subject line
	// should not kill the scan.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Stream{
		cmd:     cmd,
		stdout:  stdout,
		scanner: scanner,
	}, nil
}

// Scan advances to the next output line, reporting false at EOF
func (s *Stream) Scan() bool {
	return s.scanner.Scan()
}

// Text returns the current line
func (s *Stream) Text() string {
	return s.scanner.Text()
}

// Wait reaps the process after the stream has been drained. A read error
// or non-zero exit surfaces as EXTERNAL_TOOL_FAILURE.
func (s *Stream) Wait() error {
	if err := s.scanner.Err(); err != nil {
		_ = s.cmd.Wait()
		return errors.Wrap(errors.ExternalToolFailure, "error while reading git output", err)
	}

	if err := s.cmd.Wait(); err != nil {
		return errors.Wrap(errors.ExternalToolFailure, "git exited with failure", err)
	}

	return nil
}
