package report

import (
	"os"

	"golang.org/x/term"

	"github.com/cer4sco/freesscan/internal/types"
)

// ColorEnabled reports whether ANSI colour should be written to f.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func severityLabel(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevCritical:
		return "\x1b[1;31m" + string(s) + "\x1b[0m" // bold red
	case types.SevHigh:
		return "\x1b[31m" + string(s) + "\x1b[0m"
	case types.SevMedium:
		return "\x1b[33m" + string(s) + "\x1b[0m"
	case types.SevLow:
		return "\x1b[36m" + string(s) + "\x1b[0m"
	default:
		return string(s)
	}
}
