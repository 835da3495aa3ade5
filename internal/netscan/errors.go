package netscan

import "fmt"

// InvalidTargetError reports a host or port set that cannot be scanned.
type InvalidTargetError struct {
	Target string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("invalid target: %s", e.Reason)
	}
	return fmt.Sprintf("invalid target %q: %s", e.Target, e.Reason)
}

func invalid(target, format string, args ...any) error {
	return &InvalidTargetError{Target: target, Reason: fmt.Sprintf(format, args...)}
}
