package report

import "github.com/cer4sco/freesscan/internal/types"

// Process exit codes.
const (
	ExitClean    = 0
	ExitHigh     = 1
	ExitCritical = 2
	ExitFatal    = 3
)

// ExitCode is ExitCritical if any finding is CRITICAL, ExitHigh if any is
// HIGH, otherwise ExitClean.
func ExitCode(findings []types.Finding) int {
	code := ExitClean
	for _, f := range findings {
		switch f.Severity {
		case types.SevCritical:
			return ExitCritical
		case types.SevHigh:
			code = ExitHigh
		}
	}
	return code
}
