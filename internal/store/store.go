// Package store persists scan results. Persistence is best-effort: callers
// report findings first and treat a Save failure as a warning.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cer4sco/freesscan/internal/config"
	"github.com/cer4sco/freesscan/internal/types"
)

var ErrNotFound = errors.New("not found")

// Sink accepts the findings of one scan.
type Sink interface {
	Save(ctx context.Context, scanID string, findings []types.Finding) error
	Close() error
}

// Pruner is implemented by sinks that can expire old records.
type Pruner interface {
	PruneOlderThan(cutoff time.Time) (int, error)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Save(context.Context, string, []types.Finding) error { return nil }
func (Nop) Close() error                                         { return nil }

// Open selects a sink from dest: "" for none, "postgres" for the database
// described by db, or "badger:<dir>" for a local key-value store.
func Open(ctx context.Context, dest string, db config.DBConfig, log zerolog.Logger) (Sink, error) {
	switch {
	case dest == "":
		return Nop{}, nil
	case dest == "postgres":
		return OpenPostgres(ctx, db.DSN())
	case strings.HasPrefix(dest, "badger:"):
		return OpenBadger(strings.TrimPrefix(dest, "badger:"), log)
	default:
		return nil, fmt.Errorf("unknown store %q (want postgres or badger:<dir>)", dest)
	}
}
