// Package netx implements advisory host liveness probes.
//
// A probe never fails: every transport error, timeout or resolution failure
// reports the host as unreachable.
package netx

import (
	"context"
	"net"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultAttemptTimeout = time.Second
	DefaultDeadline       = 5 * time.Second

	// maxConcurrentProbes caps ProbeAll fan-out.
	maxConcurrentProbes = 32
)

// Prober reports whether hostname currently answers.
type Prober interface {
	Probe(ctx context.Context, hostname string) bool
}

type runFunc func(ctx context.Context, name string, args ...string) error

// PingProber sends a single ICMP echo using the system ping utility.
type PingProber struct {
	command  string
	attempt  time.Duration
	deadline time.Duration
	goos     string
	run      runFunc
}

func NewPingProber(attempt, deadline time.Duration) *PingProber {
	if attempt <= 0 {
		attempt = DefaultAttemptTimeout
	}
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	return &PingProber{
		command:  "ping",
		attempt:  attempt,
		deadline: deadline,
		goos:     runtime.GOOS,
		run:      runQuiet,
	}
}

func (p *PingProber) Probe(ctx context.Context, hostname string) bool {
	if !validHost(hostname) {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	return p.run(ctx, p.command, pingArgs(p.goos, hostname, p.attempt)...) == nil
}

// pingArgs builds a one-echo invocation with a per-reply wait for goos.
func pingArgs(goos, hostname string, wait time.Duration) []string {
	switch goos {
	case "windows":
		return []string{"-n", "1", "-w", strconv.FormatInt(wait.Milliseconds(), 10), hostname}
	case "darwin", "freebsd", "openbsd", "netbsd":
		return []string{"-c", "1", "-W", strconv.FormatInt(wait.Milliseconds(), 10), hostname}
	default:
		secs := int(wait.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		return []string{"-c", "1", "-W", strconv.Itoa(secs), hostname}
	}
}

func runQuiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = quietProcAttr()
	return cmd.Run()
}

// TCPProber dials a TCP port, by default the remote-desktop port. It serves
// hosts where ICMP is filtered or no ping binary is installed.
type TCPProber struct {
	port     int
	attempt  time.Duration
	deadline time.Duration
	dialer   net.Dialer
}

func NewTCPProber(port int, attempt, deadline time.Duration) *TCPProber {
	if attempt <= 0 {
		attempt = DefaultAttemptTimeout
	}
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	return &TCPProber{port: port, attempt: attempt, deadline: deadline, dialer: net.Dialer{Timeout: attempt}}
}

// Probe accepts a bare hostname or host:port.
func (p *TCPProber) Probe(ctx context.Context, hostname string) bool {
	if !validHost(hostname) {
		return false
	}
	addr := hostname
	if _, _, err := net.SplitHostPort(hostname); err != nil {
		addr = net.JoinHostPort(hostname, strconv.Itoa(p.port))
	}

	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// NewProber prefers the system ping and falls back to a TCP connect on
// fallbackPort when ping is not on PATH.
func NewProber(fallbackPort int, attempt, deadline time.Duration) Prober {
	if _, err := exec.LookPath("ping"); err != nil {
		return NewTCPProber(fallbackPort, attempt, deadline)
	}
	return NewPingProber(attempt, deadline)
}

// validHost rejects empty names and anything ping could read as an option.
func validHost(hostname string) bool {
	return hostname != "" &&
		!strings.HasPrefix(hostname, "-") &&
		!strings.ContainsAny(hostname, " \t\r\n")
}

// ProbeAll probes every target concurrently and returns the reachability
// of each key. Results complete in no particular order.
func ProbeAll[K comparable](ctx context.Context, p Prober, targets map[K]string) map[K]bool {
	var (
		mu  sync.Mutex
		out = make(map[K]bool, len(targets))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for key, host := range targets {
		g.Go(func() error {
			ok := p.Probe(gctx, host)
			mu.Lock()
			out[key] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
