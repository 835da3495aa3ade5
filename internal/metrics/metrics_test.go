package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cer4sco/freesscan/internal/types"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveProbe("open")
	m.ObserveFindings([]types.Finding{{Severity: types.SevHigh}})
	m.FileScanned()
	m.ObserveDuration("secret", time.Second)
	if err := m.WriteFile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatal(err)
	}
}

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveProbe("open")
	m.ObserveProbe("closed")
	m.ObserveProbe("closed")
	m.ObserveFindings([]types.Finding{{Severity: types.SevHigh}, {Severity: types.SevHigh}, {Severity: types.SevLow}})
	m.FileScanned()

	if got := testutil.ToFloat64(m.probes.WithLabelValues("closed")); got != 2 {
		t.Fatalf("closed probes = %v", got)
	}
	if got := testutil.ToFloat64(m.findings.WithLabelValues("HIGH")); got != 2 {
		t.Fatalf("high findings = %v", got)
	}
	if got := testutil.ToFloat64(m.filesScanned); got != 1 {
		t.Fatalf("files = %v", got)
	}
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveDuration("port", 250*time.Millisecond)
	m.FileScanned()
	p := filepath.Join(t.TempDir(), "freesscan.prom")
	if err := m.WriteFile(p); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, want := range []string{"freesscan_files_scanned_total 1", `freesscan_scan_duration_seconds_count{type="port"} 1`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
