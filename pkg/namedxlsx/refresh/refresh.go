// Package refresh re-opens and re-saves workbook files so that their cached
// values advance, fanning the per-file cycle across a worker pool.
package refresh

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/engine"
)

// NotUpdatedError indicates a file's modification timestamp did not advance
// after a forced save cycle, meaning the engine silently failed to update it.
type NotUpdatedError struct {
	Path string
}

func (e *NotUpdatedError) Error() string {
	return fmt.Sprintf("file %s was not updated", e.Path)
}

// Options configures a refresh run.
type Options struct {
	// Engine names the registered binding to open files with.
	// Empty means "excelize".
	Engine string
	// Workers caps concurrent file refreshes. Values below 2 mean
	// sequential processing.
	Workers int
}

func (o Options) engine() string {
	if o.Engine == "" {
		return "excelize"
	}
	return o.Engine
}

func (o Options) workers() int {
	if o.Workers < 2 {
		return 1
	}
	return o.Workers
}

// Paths refreshes every file, in place. The first failure cancels the
// remaining work and propagates; there is no partial-result aggregation.
func Paths(ctx context.Context, paths []string, opts Options) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return One(path, opts)
		})
	}
	return g.Wait()
}

// PathsInTempDir stages copies of the files in a fresh temporary directory,
// refreshes the copies, and copies them back on success. Staging locally
// sidesteps network-path trouble some engines have with remote files.
func PathsInTempDir(ctx context.Context, paths []string, opts Options) error {
	tempdir, err := os.MkdirTemp("", "namedxlsx-refresh-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempdir)

	staged := make([]string, len(paths))
	for i, path := range paths {
		staged[i] = filepath.Join(tempdir, filepath.Base(path))
		if err := copyFile(path, staged[i]); err != nil {
			return err
		}
	}
	if err := Paths(ctx, staged, opts); err != nil {
		return err
	}
	for i, path := range paths {
		if err := copyFile(staged[i], path); err != nil {
			return err
		}
	}
	return nil
}

// One runs a single open-save-close cycle and verifies the file's
// modification timestamp advanced.
func One(path string, opts Options) error {
	before, err := os.Stat(path)
	if err != nil {
		return err
	}
	e, err := engine.Open(opts.engine(), path, engine.Options{})
	if err != nil {
		return err
	}
	if err := e.Save(); err != nil {
		e.Close()
		return err
	}
	if err := e.Close(); err != nil {
		return err
	}
	after, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !after.ModTime().After(before.ModTime()) {
		return &NotUpdatedError{Path: path}
	}
	slog.Debug("refreshed", "path", path)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
