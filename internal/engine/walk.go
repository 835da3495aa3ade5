package engine

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/cer4sco/freesscan/internal/ignore"
)

// Files lazily yields the paths of scannable files under cfg.Root. When the
// root is a regular file it is yielded as is. Entries that cannot be read are
// skipped. Iteration stops early if ctx is cancelled.
func Files(ctx context.Context, cfg Config, ign ignore.Matcher) iter.Seq[string] {
	return func(yield func(string) bool) {
		if info, err := os.Stat(cfg.Root); err == nil && info.Mode().IsRegular() {
			yield(cfg.Root)
			return
		}
		limit := cfg.maxBytes()
		_ = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if d.IsDir() {
				if p != cfg.Root && isDirExcluded(d.Name(), cfg.DefaultExcludes) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, _ := filepath.Rel(cfg.Root, p)
			if isFileExcluded(rel, cfg.DefaultExcludes) {
				return nil
			}
			if !allowedByGlobs(rel, cfg) || ign.Match(rel) {
				return nil
			}
			info, err := d.Info()
			if err != nil || info.Size() > limit {
				return nil
			}
			if !yield(p) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Walk calls handle for every path Files yields and returns ctx.Err().
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string)) error {
	for p := range Files(ctx, cfg, ign) {
		handle(p)
	}
	return ctx.Err()
}
