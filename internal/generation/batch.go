package generation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/zjrosen/rtkit/internal/log"
)

// FindPending walks dir recursively and returns the files matching pattern
// that do not yet have a redirect stub, sorted by path.
//
// A pattern without a slash matches file names at any depth. A pattern with
// slashes matches the same number of trailing path components, so
// "talks/*.md" matches "2026/talks/intro.md".
//
// A symlinked dir is followed. Subdirectories that cannot be read are
// skipped; only a failure to read dir itself is an error.
func FindPending(dir, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid batch pattern %q: %w", pattern, err)
	}
	depth := strings.Count(pattern, "/") + 1

	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var pending []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			log.Debug(log.CatBatch, "Skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < depth {
			return nil
		}
		if ok, _ := path.Match(pattern, strings.Join(parts[len(parts)-depth:], "/")); !ok {
			return nil
		}

		file := filepath.Join(dir, rel)
		if _, err := os.Stat(RedirectPath(file)); err == nil {
			log.Debug(log.CatBatch, "Skipping file with existing redirect", "path", file)
			return nil
		}
		pending = append(pending, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	sort.Strings(pending)
	return pending, nil
}

// RunBatch processes files one at a time, in order, and summarises the
// results.
func (g *Generator) RunBatch(ctx context.Context, files []string) Summary {
	runID := uuid.NewString()
	log.Info(log.CatBatch, "Batch started", "runId", runID, "files", len(files))

	results := make([]Result, 0, len(files))
	for i, f := range files {
		log.Debug(log.CatBatch, "Processing file", "runId", runID, "index", i+1, "path", f)
		results = append(results, g.Run(ctx, f))
	}

	processed := lo.CountBy(results, func(r Result) bool { return r.Success })
	failed := len(results) - processed

	log.Info(log.CatBatch, "Batch finished", "runId", runID, "processed", processed, "failed", failed)
	return Summary{
		Success:   failed == 0,
		RunID:     runID,
		Total:     len(files),
		Processed: processed,
		Failed:    failed,
		Results:   results,
	}
}

// GenerateBatch loads settings and runs the workflow for every pending file
// under dir.
func GenerateBatch(ctx context.Context, configPath, dir string, factory APIFactory, opts ...Option) Summary {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errorSummary(err.Error())
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errorSummary("Directory not found: " + dir)
		}
		return errorSummary(err.Error())
	}
	if !info.IsDir() {
		return errorSummary("Not a directory: " + dir)
	}

	g, err := Load(configPath, factory, opts...)
	if err != nil {
		return errorSummary(err.Error())
	}

	pattern := g.cfg.BatchPattern
	files, err := FindPending(abs, pattern)
	if err != nil {
		return errorSummary(err.Error())
	}

	if len(files) == 0 {
		return Summary{
			Success: true,
			Results: []Result{},
			Message: fmt.Sprintf("No files matching '%s' need processing (all have .html files)", pattern),
		}
	}

	return g.RunBatch(ctx, files)
}
