package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/cer4sco/freesscan/internal/types"
)

// Baseline records fingerprints of accepted findings. Fingerprints are
// hashes, so the file never holds secret text.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[Fingerprint(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNewFindings drops findings already present in base.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	out := []types.Finding{}
	for _, f := range findings {
		if !base.Items[Fingerprint(f)] {
			out = append(out, f)
		}
	}
	return out
}

// Fingerprint identifies a finding by kind, location, line and redacted
// evidence.
func Fingerprint(f types.Finding) string {
	key := f.Kind + "|" + f.Location + "|" + strconv.Itoa(f.Line) + "|" + f.Evidence
	return strconv.FormatUint(xxhash.Sum64String(key), 16)
}
