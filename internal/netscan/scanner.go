package netscan

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cer4sco/freesscan/internal/types"
)

// DefaultWorkers caps concurrent probes when Scanner.Workers is unset.
const DefaultWorkers = 100

// Scanner probes many ports of one host through a fixed-size worker pool.
type Scanner struct {
	Prober  *Prober
	Workers int
	Logger  zerolog.Logger
}

// NewScanner returns a scanner running workers probes at a time. A nil p
// means a Prober with default timeouts.
func NewScanner(p *Prober, workers int) *Scanner {
	if p == nil {
		p = &Prober{}
	}
	return &Scanner{Prober: p, Workers: workers, Logger: p.Logger}
}

func (s *Scanner) prober() *Prober {
	if s.Prober == nil {
		return &Prober{Logger: s.Logger}
	}
	return s.Prober
}

// Scan probes every distinct port once and returns the open ones in no
// particular order. Each probe is bounded only by its own timeouts; ctx is
// passed through to the dialer so a caller deadline still applies.
func (s *Scanner) Scan(ctx context.Context, host string, ports []int) ([]types.Finding, error) {
	if host == "" {
		return nil, invalid("", "empty host")
	}
	set := make(map[int]struct{}, len(ports))
	for _, p := range ports {
		if p < 1 || p > 65535 {
			return nil, invalid(host, "port %d out of range 1-65535", p)
		}
		set[p] = struct{}{}
	}
	out := []types.Finding{}
	if len(set) == 0 {
		return out, nil
	}

	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, len(set))

	jobs := make(chan int, len(set))
	for p := range set {
		jobs <- p
	}
	close(jobs)

	prober := s.prober()
	start := time.Now()
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for range workers {
		wg.Go(func() {
			for port := range jobs {
				f, ok := prober.Probe(ctx, host, port)
				if !ok {
					continue
				}
				mu.Lock()
				out = append(out, f)
				mu.Unlock()
			}
		})
	}
	wg.Wait()
	s.Logger.Debug().Str("host", host).Int("ports", len(set)).Int("workers", workers).
		Int("open", len(out)).Dur("elapsed", time.Since(start)).Msg("port scan finished")
	return out, nil
}

// ScanRange scans the inclusive range start..end.
func (s *Scanner) ScanRange(ctx context.Context, host string, start, end int) ([]types.Finding, error) {
	if err := checkRange(host, start, end); err != nil {
		return nil, err
	}
	ports := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ports = append(ports, p)
	}
	return s.Scan(ctx, host, ports)
}
