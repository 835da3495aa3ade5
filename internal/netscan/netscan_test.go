package netscan

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cer4sco/freesscan/internal/metrics"
	"github.com/cer4sco/freesscan/internal/types"
)

// listen starts a loopback listener that writes banner (if any) to every
// connection and keeps it open until the test ends.
func listen(t *testing.T, banner string) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			if banner != "" {
				_, _ = c.Write([]byte(banner))
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	return ln.Addr().(*net.TCPAddr).Port
}

// closedPort returns a loopback port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestProbeClosedPortNoFinding(t *testing.T) {
	p := &Prober{Timeout: 500 * time.Millisecond, BannerTimeout: 100 * time.Millisecond}
	port := closedPort(t)
	_, ok := p.Probe(context.Background(), "127.0.0.1", port)
	assert.False(t, ok)
	res := p.Dial(context.Background(), "127.0.0.1", port)
	assert.Equal(t, Closed, res.Outcome)
	assert.Error(t, res.Err)
}

func TestProbeOpenHighTierPort(t *testing.T) {
	port := listen(t, "-ERR unknown command 'HEAD'\r\n")
	table := NewServiceTable(Service{Port: port, Name: "Redis", Tier: TierHigh, Remediation: "Bind Redis to localhost, enable authentication"})
	p := &Prober{Timeout: time.Second, BannerTimeout: 300 * time.Millisecond, Services: table}

	f, ok := p.Probe(context.Background(), "127.0.0.1", port)
	require.True(t, ok)
	assert.Equal(t, OpenPortKind, f.Kind)
	assert.Equal(t, types.SevHigh, f.Severity)
	assert.Equal(t, "Redis", f.Service)
	assert.Equal(t, "Open port detected: Redis", f.Description)
	assert.Equal(t, net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), f.Location)
	assert.Equal(t, 0, f.Line)
	assert.Contains(t, f.Evidence, "-ERR")
}

func TestClassificationIgnoresBanner(t *testing.T) {
	withBanner := listen(t, "SSH-2.0-OpenSSH_9.6\r\n")
	silent := listen(t, "")
	table := NewServiceTable(
		Service{Port: withBanner, Name: "MongoDB", Tier: TierHigh},
		Service{Port: silent, Name: "MongoDB", Tier: TierHigh},
	)
	p := &Prober{Timeout: time.Second, BannerTimeout: 150 * time.Millisecond, Services: table}

	a, ok := p.Probe(context.Background(), "127.0.0.1", withBanner)
	require.True(t, ok)
	b, ok := p.Probe(context.Background(), "127.0.0.1", silent)
	require.True(t, ok)
	assert.Equal(t, a.Severity, b.Severity)
	assert.NotEmpty(t, a.Evidence)
	assert.Empty(t, b.Evidence)
	assert.Equal(t, "Review if MongoDB exposure is necessary", b.Remediation)
}

func TestBannerCapped(t *testing.T) {
	long := make([]byte, 900)
	for i := range long {
		long[i] = 'x'
	}
	port := listen(t, string(long))
	p := &Prober{Timeout: time.Second, BannerTimeout: 300 * time.Millisecond}
	f, ok := p.Probe(context.Background(), "127.0.0.1", port)
	require.True(t, ok)
	assert.LessOrEqual(t, len(f.Evidence), bannerKeep)
	// Ephemeral ports are not in the table.
	assert.Equal(t, UnknownService, f.Service)
	assert.Equal(t, types.SevMedium, f.Severity)
}

func TestServiceSeverityTable(t *testing.T) {
	s := DefaultServices()
	cases := map[int]types.Severity{
		23: types.SevCritical, 445: types.SevCritical, 3389: types.SevCritical,
		21: types.SevHigh, 6379: types.SevHigh, 27017: types.SevHigh, 9200: types.SevHigh, 5984: types.SevHigh,
		22: types.SevLow, 443: types.SevLow, 5432: types.SevLow,
		12345: types.SevMedium,
	}
	for port, want := range cases {
		assert.Equal(t, want, s.Severity(port), "port %d", port)
	}
	assert.Equal(t, "Disable Telnet immediately - use SSH", s.Remediation(23))
	assert.Equal(t, "Review if SSH exposure is necessary", s.Remediation(22))
	assert.Equal(t, "Review if Unknown exposure is necessary", s.Remediation(12345))
	assert.Len(t, CommonPorts(), 19)
	assert.Equal(t, 21, CommonPorts()[0])
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	assert.Equal(t, Open, classify(nil))
	assert.Equal(t, Closed, classify(&net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}))
	assert.Equal(t, Filtered, classify(&net.OpError{Op: "dial", Err: timeoutErr{}}))
	assert.Equal(t, Filtered, classify(context.DeadlineExceeded))
	assert.Equal(t, Error, classify(errors.New("no route")))
}

func TestScanDeduplicatesAndCollects(t *testing.T) {
	open1 := listen(t, "")
	open2 := listen(t, "")
	closed := closedPort(t)
	m := metrics.New()
	p := &Prober{Timeout: time.Second, BannerTimeout: 100 * time.Millisecond, Metrics: m}
	s := NewScanner(p, 4)

	fs, err := s.Scan(context.Background(), "127.0.0.1", []int{open1, open2, open1, closed})
	require.NoError(t, err)
	assert.Len(t, fs, 2)
}

func TestScanZeroValueUsable(t *testing.T) {
	open := listen(t, "SSH-2.0-OpenSSH_9.6\r\n")
	closed := closedPort(t)

	for name, s := range map[string]*Scanner{"nil prober": NewScanner(nil, 2), "zero scanner": {}} {
		t.Run(name, func(t *testing.T) {
			fs, err := s.Scan(context.Background(), "127.0.0.1", []int{open, closed})
			require.NoError(t, err)
			require.Len(t, fs, 1)
			assert.Equal(t, "127.0.0.1:"+strconv.Itoa(open), fs[0].Location)
		})
	}
}

func TestScanWithinOneTimeout(t *testing.T) {
	const n = 30
	ports := make([]int, 0, n)
	for range n {
		ports = append(ports, listen(t, ""))
	}
	bt := 400 * time.Millisecond
	s := NewScanner(&Prober{Timeout: time.Second, BannerTimeout: bt}, DefaultWorkers)

	start := time.Now()
	fs, err := s.Scan(context.Background(), "127.0.0.1", ports)
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Len(t, fs, n)
	// Sequential probing would need n*bt.
	assert.Less(t, elapsed, 4*bt, "elapsed %s", elapsed)
}

func TestScanInvalidInput(t *testing.T) {
	s := NewScanner(&Prober{}, 10)
	var ite *InvalidTargetError

	_, err := s.Scan(context.Background(), "", []int{80})
	require.ErrorAs(t, err, &ite)

	_, err = s.Scan(context.Background(), "127.0.0.1", []int{80, 70000})
	require.ErrorAs(t, err, &ite)

	_, err = s.ScanRange(context.Background(), "127.0.0.1", 100, 10)
	require.ErrorAs(t, err, &ite)

	fs, err := s.Scan(context.Background(), "127.0.0.1", nil)
	require.NoError(t, err)
	assert.Empty(t, fs)
}

func TestScanRange(t *testing.T) {
	port := listen(t, "")
	s := NewScanner(&Prober{Timeout: time.Second, BannerTimeout: 100 * time.Millisecond}, 8)
	fs, err := s.ScanRange(context.Background(), "127.0.0.1", port, port)
	require.NoError(t, err)
	require.Len(t, fs, 1)
}
