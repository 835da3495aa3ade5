package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cer4sco/freesscan/internal/types"
)

func TestBaseline_RoundTripAndFilter(t *testing.T) {
	p := filepath.Join(t.TempDir(), "freesscan.baseline.json")
	old := sample()[:2]
	if err := SaveBaseline(p, old); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(p)
	if strings.Contains(string(raw), "ghp_") {
		t.Fatalf("baseline must not contain evidence: %s", raw)
	}
	base, err := LoadBaseline(p)
	if err != nil {
		t.Fatal(err)
	}
	fresh := FilterNewFindings(sample(), base)
	if len(fresh) != 2 || fresh[0].Location != "c.py" {
		t.Fatalf("unexpected new findings %+v", fresh)
	}
}

func TestBaseline_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadBaseline(filepath.Join(dir, "none.json")); err == nil {
		t.Fatal("expected error for missing baseline")
	}
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	b, err := LoadBaseline(bad)
	if err == nil || b.Items == nil {
		t.Fatalf("expected parse error and usable empty baseline, got %v", err)
	}
}

func TestFingerprint_LineSensitive(t *testing.T) {
	a := types.Finding{Kind: "k", Location: "f", Line: 1, Evidence: "x"}
	b := a
	b.Line = 2
	if Fingerprint(a) == Fingerprint(b) {
		t.Fatal("fingerprint should change with line")
	}
}
