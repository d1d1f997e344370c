package domain

import (
	"fmt"
	"strings"
	"time"
)

// Target is a textual IP address to be checked for reachability.
type Target string

type Status int

const (
	StatusPending Status = iota
	StatusUp
	StatusDown
	// StatusAbnormal marks a probe task that died before producing a result.
	// It is never folded into StatusDown.
	StatusAbnormal
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUp:
		return "up"
	case StatusDown:
		return "down"
	case StatusAbnormal:
		return "abnormal"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the resolved state of one probe task.
//
// Reason is nil for StatusUp, the probe error for StatusDown, and the
// recovered task failure for StatusAbnormal.
type Outcome struct {
	Target  Target
	Status  Status
	Reason  error
	Latency time.Duration
}

func (o Outcome) Up() bool { return o.Status == StatusUp }

// Mode selects how the checker schedules probes and derives its exit code.
type Mode string

const (
	ModeConcurrent Mode = "concurrent"
	ModeSequential Mode = "sequential"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeConcurrent:
		return ModeConcurrent, nil
	case ModeSequential:
		return ModeSequential, nil
	default:
		return "", fmt.Errorf("unknown check mode %q (want %q or %q)", s, ModeConcurrent, ModeSequential)
	}
}
