package netx

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingArgs(t *testing.T) {
	tests := []struct {
		goos string
		wait time.Duration
		want []string
	}{
		{"windows", time.Second, []string{"-n", "1", "-w", "1000", "h"}},
		{"linux", time.Second, []string{"-c", "1", "-W", "1", "h"}},
		{"linux", 200 * time.Millisecond, []string{"-c", "1", "-W", "1", "h"}},
		{"linux", 3 * time.Second, []string{"-c", "1", "-W", "3", "h"}},
		{"darwin", time.Second, []string{"-c", "1", "-W", "1000", "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.wait.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, pingArgs(tt.goos, "h", tt.wait))
		})
	}
}

func TestPingProber_ExitStatusDecides(t *testing.T) {
	p := NewPingProber(time.Second, 5*time.Second)
	p.goos = "windows"

	var gotName string
	var gotArgs []string
	p.run = func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}
	assert.True(t, p.Probe(context.Background(), "10.0.0.1"))
	assert.Equal(t, "ping", gotName)
	assert.Equal(t, []string{"-n", "1", "-w", "1000", "10.0.0.1"}, gotArgs)

	p.run = func(context.Context, string, ...string) error { return errors.New("exit status 1") }
	assert.False(t, p.Probe(context.Background(), "10.0.0.1"))
}

func TestPingProber_OverallDeadline(t *testing.T) {
	p := NewPingProber(time.Second, 50*time.Millisecond)
	p.run = func(ctx context.Context, _ string, _ ...string) error {
		<-ctx.Done()
		return ctx.Err()
	}

	start := time.Now()
	assert.False(t, p.Probe(context.Background(), "slow.example"))
	assert.Less(t, time.Since(start), time.Second)
}

func TestPingProber_RejectsOptionLikeHosts(t *testing.T) {
	p := NewPingProber(0, 0)
	var called atomic.Bool
	p.run = func(context.Context, string, ...string) error {
		called.Store(true)
		return nil
	}

	for _, h := range []string{"", "-f", "a b", "host\n"} {
		assert.False(t, p.Probe(context.Background(), h), h)
	}
	assert.False(t, called.Load())
}

func TestPingProber_NonResolvingHostIsFalse(t *testing.T) {
	p := NewPingProber(time.Second, 5*time.Second)

	start := time.Now()
	assert.False(t, p.Probe(context.Background(), "no-such-host.invalid"))
	assert.Less(t, time.Since(start), 6*time.Second)
}

func TestTCPProber(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	p := NewTCPProber(port, time.Second, 2*time.Second)
	assert.True(t, p.Probe(context.Background(), "127.0.0.1"))
	assert.True(t, p.Probe(context.Background(), net.JoinHostPort("127.0.0.1", strconv.Itoa(port))))

	require.NoError(t, ln.Close())
	assert.False(t, p.Probe(context.Background(), "127.0.0.1"))
	assert.False(t, p.Probe(context.Background(), "no-such-host.invalid"))
}

type mapProber map[string]bool

func (m mapProber) Probe(_ context.Context, host string) bool { return m[host] }

func TestProbeAll(t *testing.T) {
	p := mapProber{"up-1": true, "up-2": true}
	targets := map[int64]string{1: "up-1", 2: "down", 3: "up-2", 4: ""}

	got := ProbeAll(context.Background(), p, targets)

	assert.Equal(t, map[int64]bool{1: true, 2: false, 3: true, 4: false}, got)
}

func TestProbeAll_Empty(t *testing.T) {
	got := ProbeAll(context.Background(), mapProber{}, map[int64]string{})
	assert.Empty(t, got)
}

func TestNewProber_Defaults(t *testing.T) {
	p := NewProber(3389, 0, 0)
	require.NotNil(t, p)
	switch v := p.(type) {
	case *PingProber:
		assert.Equal(t, DefaultAttemptTimeout, v.attempt)
		assert.Equal(t, DefaultDeadline, v.deadline)
	case *TCPProber:
		assert.Equal(t, 3389, v.port)
	default:
		t.Fatalf("unexpected prober %T", p)
	}
}
