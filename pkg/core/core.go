package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cer4sco/freesscan/internal/detect"
	"github.com/cer4sco/freesscan/internal/engine"
	"github.com/cer4sco/freesscan/internal/netscan"
	"github.com/cer4sco/freesscan/internal/patterns"
	"github.com/cer4sco/freesscan/internal/types"
)

type (
	Finding  = types.Finding
	Severity = types.Severity
	Result   = engine.Result
)

// SecretOptions configures a secret scan. Zero values select defaults.
type SecretOptions struct {
	Root         string
	PatternsFile string // optional custom pattern document
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64
	Threads      int
	Logger       zerolog.Logger
}

// ScanSecrets scans a file or directory tree with the bundled patterns plus
// any custom ones.
func ScanSecrets(ctx context.Context, opts SecretOptions) (Result, error) {
	reg, err := patterns.Default(opts.PatternsFile)
	if err != nil {
		return Result{}, err
	}
	return engine.ScanSecrets(ctx, engine.Config{
		Root:            opts.Root,
		IncludeGlobs:    opts.IncludeGlobs,
		ExcludeGlobs:    opts.ExcludeGlobs,
		MaxBytes:        opts.MaxBytes,
		Threads:         opts.Threads,
		DefaultExcludes: true,
		Logger:          opts.Logger,
	}, detect.New(reg))
}

// PortOptions configures a port scan. Zero values select defaults.
type PortOptions struct {
	Ports   []int // defaults to the well-known service ports
	Workers int
	Prober  netscan.Prober
}

// ScanPorts probes host and returns one finding per open port.
func ScanPorts(ctx context.Context, host string, opts PortOptions) ([]Finding, error) {
	ports := opts.Ports
	if len(ports) == 0 {
		ports = netscan.CommonPorts()
	}
	p := opts.Prober
	return netscan.NewScanner(&p, opts.Workers).Scan(ctx, host, ports)
}

// PatternNames lists the bundled pattern names in registry order.
func PatternNames() []string {
	reg, err := patterns.Default("")
	if err != nil {
		return nil
	}
	names := make([]string, 0, reg.Len())
	for r := range reg.All() {
		names = append(names, r.Name)
	}
	return names
}
