package netscan

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cer4sco/freesscan/internal/metrics"
	"github.com/cer4sco/freesscan/internal/types"
)

const (
	DefaultTimeout       = time.Second
	DefaultBannerTimeout = 500 * time.Millisecond

	// OpenPortKind is the finding kind for a reachable port.
	OpenPortKind = "open_port"

	bannerProbe   = "HEAD / HTTP/1.0\r\n\r\n"
	bannerReadMax = 1024
	bannerKeep    = 200
)

// Prober performs single-port probes. The zero value uses the default
// timeouts and service table.
type Prober struct {
	Timeout       time.Duration
	BannerTimeout time.Duration
	Services      *ServiceTable
	Logger        zerolog.Logger
	Metrics       *metrics.Metrics
}

func (p *Prober) services() *ServiceTable {
	if p.Services == nil {
		return DefaultServices()
	}
	return p.Services
}

// Dial connects to host:port and, on success, attempts a banner read.
func (p *Prober) Dial(ctx context.Context, host string, port int) ProbeResult {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return ProbeResult{Outcome: classify(err), Err: err}
	}
	defer conn.Close()
	return ProbeResult{Outcome: Open, Banner: p.grabBanner(conn)}
}

// grabBanner sends a minimal HTTP request and keeps whatever the service
// answers first. Any failure yields an empty banner.
func (p *Prober) grabBanner(conn net.Conn) string {
	bt := p.BannerTimeout
	if bt <= 0 {
		bt = DefaultBannerTimeout
	}
	if err := conn.SetDeadline(time.Now().Add(bt)); err != nil {
		return ""
	}
	if _, err := conn.Write([]byte(bannerProbe)); err != nil {
		return ""
	}
	buf := make([]byte, bannerReadMax)
	n, _ := conn.Read(buf)
	if n <= 0 {
		return ""
	}
	return strings.ToValidUTF8(string(buf[:min(n, bannerKeep)]), "")
}

// Probe returns a finding when host:port accepts a TCP connection. Any other
// outcome is reported as no finding.
func (p *Prober) Probe(ctx context.Context, host string, port int) (types.Finding, bool) {
	res := p.Dial(ctx, host, port)
	p.Metrics.ObserveProbe(res.Outcome.String())
	if res.Outcome != Open {
		p.Logger.Debug().Str("host", host).Int("port", port).
			Str("outcome", res.Outcome.String()).Err(res.Err).Msg("port not open")
		return types.Finding{}, false
	}
	svc := p.services()
	name := svc.Lookup(port).Name
	return types.Finding{
		Kind:        OpenPortKind,
		Severity:    svc.Severity(port),
		Location:    net.JoinHostPort(host, strconv.Itoa(port)),
		Evidence:    types.CapEvidence(res.Banner),
		Description: "Open port detected: " + name,
		Remediation: svc.Remediation(port),
		Service:     name,
	}, true
}
