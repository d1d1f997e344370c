package probe

import (
	"context"
	"errors"
	"time"
)

// Prober performs one reachability probe against a textual IP address.
// A nil error means the target answered.
type Prober interface {
	Probe(ctx context.Context, address string) error
}

// Params are the fixed knobs of a single echo sequence.
type Params struct {
	Timeout     time.Duration // total wait for the whole sequence
	PayloadSize int           // bytes of ICMP payload
	TTL         int
	Count       int  // echo requests sent within one call
	Privileged  bool // raw ICMP socket; false uses datagram ICMP
}

func DefaultParams() Params {
	return Params{
		Timeout:     time.Second,
		PayloadSize: 166,
		TTL:         3,
		Count:       5,
		Privileged:  true,
	}
}

// Interval spreads Count requests evenly over Timeout so that every attempt
// is sent before the wait expires.
func (p Params) Interval() time.Duration {
	if p.Count <= 1 {
		return p.Timeout
	}
	return p.Timeout / time.Duration(p.Count)
}

type Kind int

const (
	KindInvalidAddress Kind = iota + 1
	KindUnreachable
	KindPermissionDenied
)

var (
	ErrInvalidAddress   = errors.New("invalid IP address syntax")
	ErrUnreachable      = errors.New("host unreachable")
	ErrPermissionDenied = errors.New("permission denied opening ICMP socket")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidAddress:
		return ErrInvalidAddress
	case KindPermissionDenied:
		return ErrPermissionDenied
	default:
		return ErrUnreachable
	}
}

func (k Kind) String() string {
	switch k {
	case KindInvalidAddress:
		return "invalid_address"
	case KindPermissionDenied:
		return "permission_denied"
	default:
		return "unreachable"
	}
}

// Error is the normalized failure of a probe. It matches its kind's sentinel
// under errors.Is and unwraps to the underlying cause, if any.
type Error struct {
	Kind    Kind
	Address string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind.sentinel() }

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of a probe error, or 0 if err is not one.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
