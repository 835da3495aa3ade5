package netscan

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Outcome is the result class of a single probe.
type Outcome int

const (
	Open Outcome = iota
	Closed
	Filtered
	Error
)

func (o Outcome) String() string {
	switch o {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Filtered:
		return "filtered"
	default:
		return "error"
	}
}

// ProbeResult is what a connection attempt produced. Banner is only set for
// Open results and may be empty. Err is set for every other outcome.
type ProbeResult struct {
	Outcome Outcome
	Banner  string
	Err     error
}

func classify(err error) Outcome {
	if err == nil {
		return Open
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return Closed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Filtered
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Filtered
	}
	return Error
}
