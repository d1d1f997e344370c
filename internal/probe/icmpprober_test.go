package probe

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"testing"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestICMPProber_InvalidAddressFailsFast(t *testing.T) {
	p := NewICMPProber(nil, DefaultParams())

	start := time.Now()
	err := p.Probe(context.Background(), "not-an-ip")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	elapsed := time.Since(start)
	assert.True(t, elapsed < 100*time.Millisecond, "parse failure took %s", elapsed)
}

func TestICMPProber_PingerCarriesParams(t *testing.T) {
	params := DefaultParams()
	params.Privileged = false
	p := NewICMPProber(zap.NewNop(), params)

	addr, err := ParseAddress("1.1.1.1")
	require.NoError(t, err)
	pinger, err := p.pinger(addr)
	require.NoError(t, err)

	assert.Equal(t, 5, pinger.Count)
	assert.Equal(t, 166, pinger.Size)
	assert.Equal(t, 3, pinger.TTL)
	assert.Equal(t, time.Second, pinger.Timeout)
	assert.Equal(t, 200*time.Millisecond, pinger.Interval)
	assert.False(t, pinger.Privileged())
	assert.GreaterOrEqual(t, pinger.ID(), 0)
	assert.Less(t, pinger.ID(), 1<<16)
	assert.Equal(t, "1.1.1.1", pinger.Addr())
}

func TestNewIdentifier_Varies(t *testing.T) {
	seen := make(map[int]struct{})
	for i := 0; i < 32; i++ {
		id := newIdentifier()
		require.GreaterOrEqual(t, id, 0)
		require.Less(t, id, 1<<16)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "identifier must not be constant across calls")
}

func TestClassify(t *testing.T) {
	params := DefaultParams()
	permErr := fmt.Errorf("listen ip4:icmp 0.0.0.0: %w", os.NewSyscallError("socket", syscall.EPERM))

	cases := []struct {
		name  string
		stats *probing.Statistics
		err   error
		want  Kind
	}{
		{"reply", &probing.Statistics{PacketsSent: 5, PacketsRecv: 1}, nil, 0},
		{"all replies", &probing.Statistics{PacketsSent: 5, PacketsRecv: 5}, nil, 0},
		{"no reply", &probing.Statistics{PacketsSent: 5}, nil, KindUnreachable},
		{"no stats", nil, nil, KindUnreachable},
		{"permission", nil, permErr, KindPermissionDenied},
		{"other error", nil, context.DeadlineExceeded, KindUnreachable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := classify("192.0.2.1", c.stats, c.err, params)
			if c.want == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, c.want, KindOf(err))
			if c.err != nil {
				assert.ErrorIs(t, err, c.err)
			}
		})
	}
}

func TestClassify_NoReplyDetail(t *testing.T) {
	err := classify("10.255.255.1", &probing.Statistics{PacketsSent: 5}, nil, DefaultParams())
	require.Error(t, err)
	assert.Equal(t, "host unreachable: no echo reply after 5 of 5 requests within 1s", err.Error())
}

// Needs ICMP privileges and network access, so it only runs when asked to.
func TestICMPProber_Loopback(t *testing.T) {
	if os.Getenv("PINGCHECK_NET_TESTS") == "" {
		t.Skip("set PINGCHECK_NET_TESTS=1 to send real ICMP")
	}
	params := DefaultParams()
	params.Privileged = os.Geteuid() == 0
	p := NewICMPProber(zap.NewNop(), params)

	err := p.Probe(context.Background(), "127.0.0.1")
	if KindOf(err) == KindPermissionDenied {
		t.Skipf("ICMP not permitted here: %v", err)
	}
	require.NoError(t, err)
}
