// Package identity resolves files to their content-addressed blob ids at
// HEAD, the committed snapshot of the repository.
package identity

import (
	"context"
	"strings"

	"freck/internal/errors"
	"freck/internal/gitexec"
	"freck/internal/logging"
)

// Resolver answers "what is this file's current committed content?"
// queries through git ls-tree. It never touches ranking state.
type Resolver struct {
	runner *gitexec.Runner
	logger *logging.Logger
}

// NewResolver creates a Resolver over the given repository runner
func NewResolver(runner *gitexec.Runner, logger *logging.Logger) *Resolver {
	return &Resolver{
		runner: runner,
		logger: logger,
	}
}

// Resolve returns the blob id for a single path at HEAD. A path absent
// from the committed tree (new or uncommitted file) yields
// FILE_NOT_IN_SNAPSHOT; that is an expected condition for the caller to
// handle, not an error worth logging.
func (r *Resolver) Resolve(ctx context.Context, path string) (string, error) {
	output, err := r.runner.Output(ctx, "ls-tree", "HEAD", "--", path)
	if err != nil {
		return "", err
	}

	if output == "" {
		return "", errors.New(errors.FileNotInSnapshot, "path not present at HEAD").
			WithDetails(map[string]interface{}{"path": path})
	}

	_, id, err := parseListingLine(output)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ResolveAll batch-resolves blob ids for a set of paths with ONE git
// invocation, amortizing the subprocess cost over the whole ranked set.
// Paths absent at HEAD are silently omitted from the result; bulk ranking
// degrades gracefully instead of failing on one missing file.
func (r *Resolver) ResolveAll(ctx context.Context, paths []string) (map[string]string, error) {
	if len(paths) == 0 {
		return map[string]string{}, nil
	}

	args := append([]string{"ls-tree", "HEAD", "--"}, paths...)
	lines, err := r.runner.Lines(ctx, args...)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		path, id, err := parseListingLine(line)
		if err != nil {
			return nil, err
		}
		result[path] = id
	}

	r.logger.Debug("Resolved content identities", map[string]interface{}{
		"requested": len(paths),
		"resolved":  len(result),
	})

	return result, nil
}

// parseListingLine splits one ls-tree line, "<mode> <type> <id>\t<path>":
// the path is everything past the first tab, the id is the third metadata
// column before it.
func parseListingLine(line string) (path, id string, err error) {
	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		return "", "", errors.New(errors.MalformedSnapshotListing, "listing line has no tab separator").
			WithDetails(map[string]interface{}{"line": line})
	}

	meta := strings.Fields(line[:tab])
	if len(meta) != 3 {
		return "", "", errors.New(errors.MalformedSnapshotListing, "listing metadata does not have 3 columns").
			WithDetails(map[string]interface{}{"line": line})
	}

	return line[tab+1:], meta[2], nil
}
