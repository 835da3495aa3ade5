package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cer4sco/freesscan/internal/metrics"
)

// DefaultMaxBytes is the size above which files are not scanned.
const DefaultMaxBytes int64 = 10 << 20

// Config controls which files are scanned and how.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DefaultExcludes bool // also skip vendored, generated and lock files
	Logger          zerolog.Logger
	Metrics         *metrics.Metrics
	Progress        func()
}

func (c Config) maxBytes() int64 {
	if c.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return c.MaxBytes
}

// InvalidTargetError reports a scan root that does not exist or cannot be
// read.
type InvalidTargetError struct {
	Target string
	Err    error
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("target not found: %s: %v", e.Target, e.Err)
}

func (e *InvalidTargetError) Unwrap() error { return e.Err }
