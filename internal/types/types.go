package types

import (
	"fmt"
	"strings"
)

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
	SevInfo     Severity = "INFO"
)

// Severities lists every level from highest to lowest risk.
var Severities = []Severity{SevCritical, SevHigh, SevMedium, SevLow, SevInfo}

// Rank orders severities; higher is riskier. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 5
	case SevHigh:
		return 4
	case SevMedium:
		return 3
	case SevLow:
		return 2
	case SevInfo:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the five enumerated levels.
func (s Severity) Valid() bool { return s.Rank() > 0 }

// ParseSeverity accepts a severity name in any case.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// MaxEvidence caps the evidence attached to a finding, in runes.
const MaxEvidence = 200

// Finding describes a single risk observation at a location. For secret
// findings Location is a file path and Line is 1-based; for port findings
// Location is host:port and Line is 0. Evidence is always redacted.
type Finding struct {
	Kind        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Location    string   `json:"location"`
	Line        int      `json:"line"`
	Evidence    string   `json:"evidence"`
	Description string   `json:"description"`
	Remediation string   `json:"remediation"`
	Service     string   `json:"service,omitempty"` // port findings only
}

// CapEvidence truncates s to MaxEvidence runes.
func CapEvidence(s string) string {
	if len(s) <= MaxEvidence {
		return s
	}
	r := []rune(s)
	if len(r) <= MaxEvidence {
		return s
	}
	return string(r[:MaxEvidence])
}
