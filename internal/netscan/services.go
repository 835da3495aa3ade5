package netscan

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cer4sco/freesscan/internal/types"
)

// Tier is the risk class of a well-known port.
type Tier int

const (
	TierDefault Tier = iota
	TierHigh
	TierCritical
)

func (t Tier) String() string {
	switch t {
	case TierCritical:
		return "critical"
	case TierHigh:
		return "high"
	default:
		return "default"
	}
}

// UnknownService names ports missing from the table.
const UnknownService = "Unknown"

// Service describes one well-known port.
type Service struct {
	Port        int
	Name        string
	Tier        Tier
	Remediation string // empty means the generic review advice
}

// ServiceTable maps ports to services. It is read-only after construction.
type ServiceTable struct {
	byPort map[int]Service
}

// NewServiceTable indexes services by port. A later entry for the same port
// replaces an earlier one.
func NewServiceTable(services ...Service) *ServiceTable {
	t := &ServiceTable{byPort: make(map[int]Service, len(services))}
	for _, s := range services {
		t.byPort[s.Port] = s
	}
	return t
}

var defaultServices = NewServiceTable(
	Service{Port: 21, Name: "FTP", Tier: TierHigh, Remediation: "Disable FTP or use SFTP instead"},
	Service{Port: 22, Name: "SSH"},
	Service{Port: 23, Name: "Telnet", Tier: TierCritical, Remediation: "Disable Telnet immediately - use SSH"},
	Service{Port: 25, Name: "SMTP"},
	Service{Port: 53, Name: "DNS"},
	Service{Port: 80, Name: "HTTP"},
	Service{Port: 110, Name: "POP3"},
	Service{Port: 143, Name: "IMAP"},
	Service{Port: 443, Name: "HTTPS"},
	Service{Port: 445, Name: "SMB", Tier: TierCritical, Remediation: "Restrict SMB access to internal networks only"},
	Service{Port: 3306, Name: "MySQL"},
	Service{Port: 3389, Name: "RDP", Tier: TierCritical, Remediation: "Use VPN for RDP access, enable NLA"},
	Service{Port: 5432, Name: "PostgreSQL"},
	Service{Port: 5984, Name: "CouchDB", Tier: TierHigh, Remediation: "Enable CouchDB authentication, bind to localhost"},
	Service{Port: 6379, Name: "Redis", Tier: TierHigh, Remediation: "Bind Redis to localhost, enable authentication"},
	Service{Port: 8080, Name: "HTTP-Alt"},
	Service{Port: 8443, Name: "HTTPS-Alt"},
	Service{Port: 9200, Name: "Elasticsearch", Tier: TierHigh, Remediation: "Enable Elasticsearch authentication, restrict network access"},
	Service{Port: 27017, Name: "MongoDB", Tier: TierHigh, Remediation: "Enable MongoDB authentication, bind to localhost"},
)

// DefaultServices returns the built-in well-known port table.
func DefaultServices() *ServiceTable { return defaultServices }

// CommonPorts lists the built-in table's ports in ascending order.
func CommonPorts() []int { return defaultServices.Ports() }

// Lookup returns the service on port, or an UnknownService entry.
func (t *ServiceTable) Lookup(port int) Service {
	if s, ok := t.byPort[port]; ok {
		return s
	}
	return Service{Port: port, Name: UnknownService}
}

// Severity classifies an open port. Only the port number is consulted.
// Unlisted ports rank MEDIUM while listed default-tier ports rank LOW.
func (t *ServiceTable) Severity(port int) types.Severity {
	s := t.Lookup(port)
	switch {
	case s.Tier == TierCritical:
		return types.SevCritical
	case s.Tier == TierHigh:
		return types.SevHigh
	case s.Name == UnknownService:
		return types.SevMedium
	default:
		return types.SevLow
	}
}

// Remediation returns the advice for port, or a generic review hint.
func (t *ServiceTable) Remediation(port int) string {
	s := t.Lookup(port)
	if s.Remediation != "" {
		return s.Remediation
	}
	return fmt.Sprintf("Review if %s exposure is necessary", s.Name)
}

// Ports returns the known ports in ascending order.
func (t *ServiceTable) Ports() []int {
	return slices.Sorted(maps.Keys(t.byPort))
}

// All returns the entries ordered by port.
func (t *ServiceTable) All() []Service {
	out := make([]Service, 0, len(t.byPort))
	for _, p := range t.Ports() {
		out = append(out, t.byPort[p])
	}
	return out
}
