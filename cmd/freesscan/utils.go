package freesscan

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/logging"
)

func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	l, err := logging.New(flagLogLevel, flagLogFormat, cmd.ErrOrStderr())
	if err != nil {
		return zerolog.Nop(), usagef("%v", err)
	}
	return l, nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

// pickInt lets an explicitly set flag win over local then global config;
// otherwise the flag default applies.
func pickInt(cli int, changed bool, local, global *int) int {
	if changed {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return cli
}

func pickInt64(cli int64, changed bool, local, global *int64) int64 {
	if changed {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return cli
}

// pickDuration follows pickInt; zero config durations mean unset.
func pickDuration(cli time.Duration, changed bool, local, global time.Duration) time.Duration {
	switch {
	case changed:
		return cli
	case local > 0:
		return local
	case global > 0:
		return global
	default:
		return cli
	}
}

// pickBool lets an explicitly set flag win over config files, which win
// over the flag default.
func pickBool(cli, changed bool, local, global *bool) bool {
	if changed {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return cli
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
