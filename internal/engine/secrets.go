package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cer4sco/freesscan/internal/detect"
	"github.com/cer4sco/freesscan/internal/ignore"
	"github.com/cer4sco/freesscan/internal/types"
)

// Result is the outcome of a secret scan.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	Duration     time.Duration
}

// ScanSecrets runs d over every scannable file under cfg.Root. Files are
// independent, so up to cfg.Threads of them are scanned at once. A missing
// root is an *InvalidTargetError; unreadable files become scan_error findings.
func ScanSecrets(ctx context.Context, cfg Config, d *detect.Detector) (Result, error) {
	var res Result
	if _, err := os.Stat(cfg.Root); err != nil {
		return res, &InvalidTargetError{Target: cfg.Root, Err: err}
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	ign, err := LoadIgnore(cfg.Root)
	if err != nil {
		cfg.Logger.Warn().Err(err).Msg("ignoring unreadable " + ignore.FileName)
	}

	started := time.Now()
	var mu sync.Mutex
	res.Findings = []types.Finding{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for p := range Files(gctx, cfg, ign) {
		g.Go(func() error {
			fs := slices.Collect(d.ScanFile(p))
			cfg.Metrics.FileScanned()
			mu.Lock()
			defer mu.Unlock()
			res.Findings = append(res.Findings, fs...)
			res.FilesScanned++
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("secret scan interrupted: %w", err)
	}
	res.Duration = time.Since(started)
	cfg.Metrics.ObserveDuration("secret", res.Duration)
	cfg.Logger.Debug().Str("target", cfg.Root).Int("files", res.FilesScanned).
		Int("findings", len(res.Findings)).Dur("elapsed", res.Duration).Msg("secret scan finished")
	return res, nil
}

// LoadIgnore reads the ignore file of a directory root. A single-file
// target has none.
func LoadIgnore(root string) (ignore.Matcher, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return ignore.Matcher{}, nil
	}
	return ignore.LoadRoot(root)
}
