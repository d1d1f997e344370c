package probe

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/netip"
	"os"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"
)

// ICMPProber sends one echo sequence per call. Every call opens and closes
// its own socket and picks a fresh random identifier, so concurrent calls do
// not share state.
type ICMPProber struct {
	Params Params
	Logger *zap.Logger
}

func NewICMPProber(logger *zap.Logger, params Params) *ICMPProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ICMPProber{Params: params, Logger: logger}
}

func (p *ICMPProber) Probe(ctx context.Context, address string) error {
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}

	pinger, err := p.pinger(addr)
	if err != nil {
		return &Error{Kind: KindUnreachable, Address: address, Detail: err.Error(), Err: err}
	}

	p.Logger.Debug("probe_start",
		zap.String("address", address),
		zap.Int("id", pinger.ID()),
		zap.Int("count", pinger.Count),
		zap.Int("size", pinger.Size),
		zap.Int("ttl", pinger.TTL),
		zap.Duration("timeout", pinger.Timeout),
	)

	runErr := pinger.RunWithContext(ctx)
	return classify(address, pinger.Statistics(), runErr, p.Params)
}

// ParseAddress accepts plain IPv4 and IPv6 literals only.
func ParseAddress(address string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(address)
	if err == nil && addr.Zone() != "" {
		err = fmt.Errorf("zone %q not allowed", addr.Zone())
	}
	if err != nil {
		return netip.Addr{}, &Error{Kind: KindInvalidAddress, Address: address, Err: err}
	}
	return addr.Unmap(), nil
}

func (p *ICMPProber) pinger(addr netip.Addr) (*probing.Pinger, error) {
	pinger, err := probing.NewPinger(addr.String())
	if err != nil {
		return nil, fmt.Errorf("create pinger: %w", err)
	}
	pinger.Count = p.Params.Count
	pinger.Size = p.Params.PayloadSize
	pinger.TTL = p.Params.TTL
	pinger.Timeout = p.Params.Timeout
	pinger.Interval = p.Params.Interval()
	pinger.SetPrivileged(p.Params.Privileged)
	pinger.SetID(newIdentifier())
	pinger.SetLogger(probeLogger{p.Logger.Sugar()})
	return pinger, nil
}

// newIdentifier only has to differ between overlapping sessions on the host.
func newIdentifier() int {
	return rand.Intn(1 << 16)
}

func classify(address string, stats *probing.Statistics, runErr error, params Params) error {
	if runErr != nil {
		if errors.Is(runErr, os.ErrPermission) {
			return &Error{Kind: KindPermissionDenied, Address: address, Detail: runErr.Error(), Err: runErr}
		}
		return &Error{Kind: KindUnreachable, Address: address, Detail: runErr.Error(), Err: runErr}
	}
	if stats == nil || stats.PacketsRecv == 0 {
		sent := 0
		if stats != nil {
			sent = stats.PacketsSent
		}
		return &Error{
			Kind:    KindUnreachable,
			Address: address,
			Detail:  fmt.Sprintf("no echo reply after %d of %d requests within %s", sent, params.Count, params.Timeout),
		}
	}
	return nil
}

// probeLogger routes pro-bing's log calls into zap. Fatalf is demoted so the
// library can never exit the process.
type probeLogger struct {
	s *zap.SugaredLogger
}

func (l probeLogger) Fatalf(format string, v ...interface{}) { l.s.Errorf(format, v...) }
func (l probeLogger) Errorf(format string, v ...interface{}) { l.s.Errorf(format, v...) }
func (l probeLogger) Warnf(format string, v ...interface{})  { l.s.Warnf(format, v...) }
func (l probeLogger) Infof(format string, v ...interface{})  { l.s.Infof(format, v...) }
func (l probeLogger) Debugf(format string, v ...interface{}) { l.s.Debugf(format, v...) }
