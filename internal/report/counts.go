package report

import (
	"cmp"
	"slices"

	"github.com/cer4sco/freesscan/internal/types"
)

// SeverityCount is the number of findings at one severity.
type SeverityCount struct {
	Severity types.Severity
	Count    int
}

// BySeverity counts findings per severity, highest first, omitting zeros.
func BySeverity(findings []types.Finding) []SeverityCount {
	counts := map[types.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}
	var out []SeverityCount
	for _, s := range types.Severities {
		if n := counts[s]; n > 0 {
			out = append(out, SeverityCount{Severity: s, Count: n})
		}
	}
	return out
}

// KindCount is the number of findings of one kind.
type KindCount struct {
	Kind  string
	Count int
}

// TopKinds ranks finding kinds by frequency, descending, ties by name, and
// keeps at most n of them.
func TopKinds(findings []types.Finding, n int) []KindCount {
	counts := map[string]int{}
	for _, f := range findings {
		counts[f.Kind]++
	}
	out := make([]KindCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, KindCount{Kind: k, Count: c})
	}
	slices.SortFunc(out, func(a, b KindCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// sortFindings orders by severity (highest first), then location and line.
func sortFindings(findings []types.Finding) []types.Finding {
	out := slices.Clone(findings)
	slices.SortStableFunc(out, func(a, b types.Finding) int {
		if c := cmp.Compare(b.Severity.Rank(), a.Severity.Rank()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Location, b.Location); c != 0 {
			return c
		}
		return cmp.Compare(a.Line, b.Line)
	})
	return out
}
