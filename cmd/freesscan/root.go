package freesscan

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/report"
)

var (
	flagFormat    string
	flagNoColor   bool
	flagLogLevel  string
	flagLogFormat string

	version = "0.1.0"

	// exitCode is set by commands whose outcome is not just success or error.
	exitCode int
	logger   = zerolog.Nop()
)

// rootCmd is the base Cobra command for the freesscan CLI.
var rootCmd = &cobra.Command{
	Use:           "freesscan",
	Short:         "Detect hardcoded secrets and exposed network services",
	Long:          "freesscan scans file trees for hardcoded secrets and probes hosts for exposed services, reporting each risk with a severity and remediation.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(cmd)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute runs the CLI and returns the process exit code: the finding-driven
// code of a scan, or report.ExitFatal when a command fails.
func Execute() int {
	exitCode = report.ExitClean
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "run 'freesscan --help' for usage")
		}
		return report.ExitFatal
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text|json|summary|table|sarif")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "log format: console|json")
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
}

// usageError marks errors caused by bad flags or arguments.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
